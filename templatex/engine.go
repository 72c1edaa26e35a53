package templatex

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/oddtoolkit/docsite/siteconfig"
)

const (
	ModuleTemplate  = "module"
	SidebarTemplate = "sidebar"
)

//go:embed templates/*.tmpl
var builtin embed.FS

// Engine renders site configuration artifacts from the embedded templates.
type Engine struct {
	templates *template.Template
}

// FrontMatter is the metadata block written at the top of markdown artifacts.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Load parses the embedded templates.
func Load() (*Engine, error) {
	funcs := template.FuncMap{
		"jsString":    jsString,
		"mdText":      mdText,
		"mdLink":      mdLink,
		"frontMatter": frontMatter,
	}

	tpl, err := template.New("root").Funcs(funcs).ParseFS(builtin, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, name := range []string{ModuleTemplate, SidebarTemplate} {
		if tpl.Lookup(name) == nil {
			return nil, fmt.Errorf("template %q is not defined", name)
		}
	}
	return &Engine{templates: tpl}, nil
}

// Render executes the named template against site.
func (e *Engine) Render(w io.Writer, name string, site siteconfig.Site) error {
	if e == nil || e.templates == nil {
		return fmt.Errorf("template engine not initialized")
	}
	return e.templates.ExecuteTemplate(w, name, site)
}

// jsString quotes s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

const markdownSpecials = "\\`*_[]<>#!"

// mdText escapes inline markdown punctuation so labels survive verbatim.
func mdText(s string) (string, error) {
	if strings.ContainsAny(s, "\r\n") {
		return "", fmt.Errorf("label %q spans multiple lines", s)
	}
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(markdownSpecials, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// mdLink renders a link destination, wrapping it in angle brackets when it
// contains characters a bare destination cannot carry. Backslashes are
// doubled so they survive the parser's escape handling.
func mdLink(link string) (string, error) {
	if link == "" {
		return "<>", nil
	}
	if strings.ContainsAny(link, "<>\r\n") {
		return "", fmt.Errorf("link %q cannot be written as markdown", link)
	}
	escaped := strings.ReplaceAll(link, `\`, `\\`)
	if strings.ContainsAny(link, " \t()") {
		return "<" + escaped + ">", nil
	}
	return escaped, nil
}

func frontMatter(site siteconfig.Site) (string, error) {
	out, err := yaml.Marshal(FrontMatter{Title: site.Title, Description: site.Description})
	if err != nil {
		return "", fmt.Errorf("front matter: %w", err)
	}
	return string(out), nil
}
