package lessongen

import (
	"fmt"
	"maps"

	"github.com/panyam/lessongen/funcs"
)

// TemplateRenderer renders pages from a template name and keyword params.
//
// When params has a "content" entry, its front matter is parsed first.  Every
// front matter key k is exposed as "fm_<k>" and merged underneath the explicit
// "frontmatter" param.  The remaining body is itself executed as a template
// with the same params before being handed to the page template, so a body
// can refer to its own front matter, eg {{ javaref .fm_level .fm_module ... }}.
type TemplateRenderer struct {
	Store *TemplateStore

	// Repository url template for the javaref/reporef/forkrepo helpers
	RepoURL string

	// Extra functions, applied last
	Funcs map[string]any
}

func NewTemplateRenderer(repoURL string, templateFolders ...string) *TemplateRenderer {
	return &TemplateRenderer{
		Store:   NewTemplateStore(templateFolders...),
		RepoURL: repoURL,
	}
}

// FuncMap returns the functions available to a page written to workingDir.
func (r *TemplateRenderer) FuncMap(workingDir string) map[string]any {
	out := funcs.DefaultFuncMap()
	helpers := &funcs.Helpers{WorkingDir: workingDir, RepoURL: r.RepoURL}
	maps.Copy(out, helpers.FuncMap())
	out["markdown"] = MarkdownToHTML
	out["headings"] = Headings
	maps.Copy(out, r.Funcs)
	return out
}

func (r *TemplateRenderer) Render(templateName string, params map[string]any) (string, error) {
	kwargs := maps.Clone(params)
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	workingDir, _ := kwargs["working_directory"].(string)
	fm := r.FuncMap(workingDir)

	if content, ok := kwargs["content"].(string); ok {
		meta, body, err := ParseFrontMatter(content)
		if err != nil {
			return "", fmt.Errorf("front matter of %s content: %w", templateName, err)
		}

		merged := map[string]any{}
		for k, v := range meta {
			v = normalizeYAML(v)
			kwargs["fm_"+k] = v
			merged[k] = v
		}
		if explicit, ok := kwargs["frontmatter"].(map[string]any); ok {
			maps.Copy(merged, explicit)
		}
		kwargs["frontmatter"] = merged

		inner, err := executeText(templateName+":content", body, kwargs, fm)
		if err != nil {
			return "", err
		}
		kwargs["content"] = inner
	}

	store := r.Store
	if store == nil {
		store = NewTemplateStore()
	}
	return store.Execute(templateName, kwargs, fm)
}
