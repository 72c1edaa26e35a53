package main

import "fmt"

const (
	TOOL_NAME    = "ODDToolkit-DocSite"
	TOOL_VERSION = "1.0.0"
)

// Set at link stage via `-ldflags "-X main.GIT_COMMIT=$(git rev-parse --short HEAD)"`
var GIT_COMMIT string

// Version string printed by -version and logged at startup
var TOOL_SIGNATURE = fmt.Sprintf("%s (%s)", TOOL_NAME+"/"+TOOL_VERSION, func() string {
	if GIT_COMMIT != "" {
		return GIT_COMMIT
	}
	return "unknown"
}())
