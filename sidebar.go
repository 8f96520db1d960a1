package lessongen

import (
	"context"
	"path"
	"path/filepath"
	"strings"
)

// SidebarEntry is a node of the site navigation.
type SidebarEntry struct {
	Collapsable *bool          `yaml:"collapsable,omitempty"`
	Title       string         `yaml:"title"`
	Path        string         `yaml:"path,omitempty"`
	Children    []SidebarEntry `yaml:"children,omitempty"`
}

// URLPath is the site url of a page under the lessons directory, eg
// /lessons/lesson2/turtle-spiral/
func (p *LessonPlan) URLPath(parts ...string) string {
	subdir := strings.Trim(filepath.ToSlash(p.LessonsSubdir), "/")
	return path.Join(append([]string{"/", subdir}, parts...)...) + "/"
}

// Sidebar is the plan's own sidebar entries followed by one entry per lesson.
func (p *LessonPlan) Sidebar(ctx context.Context) ([]any, error) {
	out := []any{}
	for _, entry := range p.File.Sidebar {
		out = append(out, normalizeYAML(entry))
	}
	lessons, err := p.Lessons()
	if err != nil {
		return nil, err
	}
	for _, l := range lessons {
		entry, err := l.SidebarEntry(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}
