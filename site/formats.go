package site

import (
	"github.com/oddtoolkit/docsite/config"
)

// artifact describes how a format is stored and displayed. MediaType selects
// the minifier and is empty for formats that are never minified.
type artifact struct {
	File      string
	Language  string
	MediaType string
}

const (
	mediaJavaScript = "application/javascript"
	mediaJSON       = "application/json"
)

var artifacts = map[string]artifact{
	config.FormatModule:  {File: "config.js", Language: "javascript", MediaType: mediaJavaScript},
	config.FormatJSON:    {File: "config.json", Language: "json", MediaType: mediaJSON},
	config.FormatYAML:    {File: "config.yaml", Language: "yaml"},
	config.FormatSidebar: {File: "_Sidebar.md", Language: "markdown"},
}

func lookupArtifact(format string) (artifact, bool) {
	a, ok := artifacts[format]
	return a, ok
}
