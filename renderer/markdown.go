package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/text/unicode/norm"

	"github.com/oddtoolkit/docsite/siteconfig"
)

// ErrMalformedSidebar is returned when a sidebar document does not follow the
// navigation layout.
var ErrMalformedSidebar = errors.New("malformed sidebar document")

// Parser reads navigation back out of markdown sidebar documents.
type Parser struct {
	md goldmark.Markdown
}

// NewParser constructs a parser with front matter support.
func NewParser() *Parser {
	return &Parser{md: goldmark.New(goldmark.WithExtensions(meta.Meta))}
}

// ParseSidebar rebuilds a site configuration from a sidebar document. The
// front matter carries title and description, the level-1 heading opens the
// top navigation and each level-2 heading opens a sidebar section.
func (p *Parser) ParseSidebar(src []byte) (siteconfig.Site, error) {
	ctx := parser.NewContext()
	doc := p.md.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))

	values, err := meta.TryGet(ctx)
	if err != nil {
		return siteconfig.Site{}, fmt.Errorf("front matter: %w", err)
	}
	title, ok := values["title"].(string)
	if !ok {
		return siteconfig.Site{}, errors.Join(ErrMalformedSidebar, errors.New("front matter title missing"))
	}
	description, _ := values["description"].(string)

	site := siteconfig.Site{
		Title:       normalize(title),
		Description: normalize(description),
		ThemeConfig: siteconfig.ThemeConfig{
			Nav:     []siteconfig.NavItem{},
			Sidebar: []siteconfig.SidebarSection{},
		},
	}

	const (
		blockNone = iota
		blockNav
		blockSection
	)
	block := blockNone

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			switch n.Level {
			case 1:
				block = blockNav
			case 2:
				block = blockSection
				site.ThemeConfig.Sidebar = append(site.ThemeConfig.Sidebar, siteconfig.SidebarSection{
					Text:  extractText(n, src),
					Items: []siteconfig.SidebarItem{},
				})
			default:
				return siteconfig.Site{}, errors.Join(ErrMalformedSidebar, fmt.Errorf("unexpected level %d heading %q", n.Level, extractText(n, src)))
			}
		case *ast.List:
			if block == blockNone {
				return siteconfig.Site{}, errors.Join(ErrMalformedSidebar, errors.New("list before any heading"))
			}
			links, err := listLinks(n, src)
			if err != nil {
				return siteconfig.Site{}, err
			}
			for _, l := range links {
				if block == blockNav {
					site.ThemeConfig.Nav = append(site.ThemeConfig.Nav, siteconfig.NavItem{Text: l.Text, Link: l.Link})
					continue
				}
				last := &site.ThemeConfig.Sidebar[len(site.ThemeConfig.Sidebar)-1]
				last.Items = append(last.Items, siteconfig.SidebarItem{Text: l.Text, Link: l.Link})
			}
		}
	}

	return site, nil
}

type navLink struct {
	Text string
	Link string
}

func listLinks(list *ast.List, src []byte) ([]navLink, error) {
	links := make([]navLink, 0, list.ChildCount())
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var found *ast.Link
		_ = ast.Walk(item, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if link, ok := n.(*ast.Link); ok && entering {
				found = link
				return ast.WalkStop, nil
			}
			return ast.WalkContinue, nil
		})
		if found == nil {
			return nil, errors.Join(ErrMalformedSidebar, fmt.Errorf("list item without link: %q", extractText(item, src)))
		}
		links = append(links, navLink{
			Text: extractText(found, src),
			Link: normalize(string(util.UnescapePunctuations(found.Destination))),
		})
	}
	return links, nil
}

func extractText(root ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if n == root {
			return ast.WalkContinue, nil
		}
		if text, ok := n.(*ast.Text); ok && entering {
			sb.Write(text.Segment.Value(source))
			if text.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return normalize(string(util.UnescapePunctuations([]byte(sb.String()))))
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
