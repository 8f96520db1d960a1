package lessongen

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	ttmpl "text/template"

	gotl "github.com/panyam/templar"
)

//go:embed templates/*.md
var defaultTemplates embed.FS

// TemplateStore finds page templates by name.  Templates in the configured
// folders are loaded through templar and win over the built in ones.
type TemplateStore struct {
	// Folders searched for templates, in order
	Folders []string

	group *gotl.TemplateGroup
}

func NewTemplateStore(folders ...string) *TemplateStore {
	s := &TemplateStore{}
	for _, f := range folders {
		if f != "" {
			s.Folders = append(s.Folders, expandPath(f))
		}
	}
	if len(s.Folders) > 0 {
		s.group = gotl.NewTemplateGroup()
		loaders := &gotl.LoaderList{}
		loaders.DefaultLoader = gotl.NewFileSystemLoader(s.Folders...)
		s.group.Loader = loaders
	}
	return s
}

// Execute renders the template called name with params.
func (s *TemplateStore) Execute(name string, params map[string]any, funcs map[string]any) (string, error) {
	if s.group != nil {
		tmpl, err := s.group.Loader.Load(name, "")
		if err == nil && len(tmpl) > 0 {
			if tmpl[0].Name == "" {
				tmpl[0].Name = name
			}
			out := bytes.NewBufferString("")
			if err := s.group.RenderTextTemplate(out, tmpl[0], "", params, funcs); err != nil {
				return "", fmt.Errorf("template %s: %w", name, err)
			}
			return out.String(), nil
		}
	}

	source, err := fs.ReadFile(defaultTemplates, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	return executeText(name, string(source), params, funcs)
}

// executeText parses and runs a one-off text template.
func executeText(name, source string, data any, funcs map[string]any) (string, error) {
	tmpl, err := ttmpl.New(name).Funcs(funcs).Parse(source)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", name, err)
	}
	out := bytes.NewBufferString("")
	if err := tmpl.Execute(out, data); err != nil {
		return "", fmt.Errorf("executing %s: %w", name, err)
	}
	return out.String(), nil
}
