package siteconfig

// Site describes the documentation site handed to the VitePress engine.
// Field names and nesting follow the engine's config schema.
type Site struct {
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	ThemeConfig ThemeConfig `json:"themeConfig" yaml:"themeConfig"`
}

// ThemeConfig carries the navigation topology. Display order is significant.
type ThemeConfig struct {
	Nav     []NavItem        `json:"nav" yaml:"nav"`
	Sidebar []SidebarSection `json:"sidebar" yaml:"sidebar"`
}

// NavItem is a top-level navigation link.
type NavItem struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// SidebarSection groups sidebar links under a label.
type SidebarSection struct {
	Text  string        `json:"text" yaml:"text"`
	Items []SidebarItem `json:"items" yaml:"items"`
}

// SidebarItem is a single sidebar link.
type SidebarItem struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

const (
	Title       = "ODDToolkit"
	Description = "Documentation for the Ontology Driven Design Toolkit"

	usageLink = "/guide/usage"
)

// Produce returns the site configuration. Each call allocates new slices so
// callers can never observe each other's modifications.
func Produce() Site {
	return Site{
		Title:       Title,
		Description: Description,
		ThemeConfig: ThemeConfig{
			Nav: []NavItem{
				{Text: "Guide", Link: usageLink},
			},
			Sidebar: []SidebarSection{
				{
					Text: "Guide",
					Items: []SidebarItem{
						{Text: "Usage", Link: usageLink},
					},
				},
			},
		},
	}
}

// Clone returns a deep copy of s.
func (s Site) Clone() Site {
	out := Site{Title: s.Title, Description: s.Description}
	if s.ThemeConfig.Nav != nil {
		out.ThemeConfig.Nav = append(make([]NavItem, 0, len(s.ThemeConfig.Nav)), s.ThemeConfig.Nav...)
	}
	if s.ThemeConfig.Sidebar != nil {
		out.ThemeConfig.Sidebar = make([]SidebarSection, len(s.ThemeConfig.Sidebar))
		for i, section := range s.ThemeConfig.Sidebar {
			out.ThemeConfig.Sidebar[i].Text = section.Text
			if section.Items != nil {
				out.ThemeConfig.Sidebar[i].Items = append(make([]SidebarItem, 0, len(section.Items)), section.Items...)
			}
		}
	}
	return out
}

// Links lists every link target in display order, nav first, without
// duplicates. Targets are reported as written and never resolved.
func (s Site) Links() []string {
	seen := make(map[string]struct{})
	links := make([]string, 0, len(s.ThemeConfig.Nav)+len(s.ThemeConfig.Sidebar))
	add := func(link string) {
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	for _, item := range s.ThemeConfig.Nav {
		add(item.Link)
	}
	for _, section := range s.ThemeConfig.Sidebar {
		for _, item := range section.Items {
			add(item.Link)
		}
	}
	return links
}
