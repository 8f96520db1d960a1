package funcs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"gopkg.in/yaml.v2"
)

// DefaultRepoURL is where the java repository of a level/module lives.
const DefaultRepoURL = "https://github.com/League-Java/{level}-{module}"

const trinketEmbedURL = "https://trinket.io/tools/1.0/jekyll/embed/"

var htmlTag = regexp.MustCompile(`<.*?>`)

// StripHTML removes every tag from text.
func StripHTML(text any) string {
	s := ToString(text)
	if s == "" {
		return ""
	}
	return htmlTag.ReplaceAllString(s, "")
}

// ToYAML dumps v as yaml.  Empty values dump to "".
func ToYAML(v any) (string, error) {
	if isEmpty(v) {
		return "", nil
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// QuoteCode percent-encodes s like a url path: "/" stays, spaces become %20.
func QuoteCode(s string) string {
	q := url.QueryEscape(s)
	q = strings.ReplaceAll(q, "+", "%20")
	return strings.ReplaceAll(q, "%2F", "/")
}

// TrinketIFrame embeds code in a trinket widget.  The optional args are
// width, height and embed type, defaulting to "300", "500" and "python".
func TrinketIFrame(code string, args ...any) string {
	width, height, embedType := "300", "500", "python"
	if len(args) > 0 && ToString(args[0]) != "" {
		width = ToString(args[0])
	}
	if len(args) > 1 && ToString(args[1]) != "" {
		height = ToString(args[1])
	}
	if len(args) > 2 && ToString(args[2]) != "" {
		embedType = ToString(args[2])
	}
	src := trinketEmbedURL + embedType + "#code=" + QuoteCode(strings.TrimSpace(code))
	return fmt.Sprintf(`<iframe width="%s" height="%s" src="%s" frameborder="0" marginwidth="0" marginheight="0" allowfullscreen></iframe>`,
		width, height, src)
}

// Helpers are the template functions bound to the page being rendered.
type Helpers struct {
	// Directory the page is written to.  Relative file names resolve here.
	WorkingDir string

	// Repository url template with {level} and {module} placeholders
	RepoURL string
}

func (h *Helpers) path(file string) string {
	if filepath.IsAbs(file) || h.WorkingDir == "" {
		return file
	}
	return filepath.Join(h.WorkingDir, file)
}

// ReadCode returns the contents of file.
func (h *Helpers) ReadCode(file string) (string, error) {
	data, err := os.ReadFile(h.path(file))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Trinket embeds the program stored in file.
func (h *Helpers) Trinket(file string, args ...any) (string, error) {
	code, err := h.ReadCode(file)
	if err != nil {
		return "", fmt.Errorf("trinket: %w", err)
	}
	return TrinketIFrame(code, args...), nil
}

// GoalImage floats the picture of what the finished program looks like.
func (h *Helpers) GoalImage(file string) string {
	name := filepath.Base(h.path(file))
	return fmt.Sprintf(`<img src="./%s" alt="Your Goal" style="float: right; width: 200px; margin-bottom:20px; "/>`, name)
}

// RepoLink returns the repository url for a level and module, or "" if
// either is missing.
func (h *Helpers) RepoLink(level, module any) string {
	l, m := ToString(level), ToString(module)
	if l == "" || m == "" {
		return ""
	}
	tmpl := h.RepoURL
	if tmpl == "" {
		tmpl = DefaultRepoURL
	}
	return strings.NewReplacer("{level}", l, "{module}", m).Replace(tmpl)
}

// RepoRef links to the module repository.
func (h *Helpers) RepoRef(level, module any) string {
	link := h.RepoLink(level, module)
	if link == "" {
		return ""
	}
	return fmt.Sprintf("[%s-%s](%s)", ToString(level), ToString(module), link)
}

// ForkRepo is a button creating a student copy of the module repository.
func (h *Helpers) ForkRepo(level, module any) string {
	link := h.RepoLink(level, module)
	if link == "" {
		return ""
	}
	return fmt.Sprintf(`<a class="forkrepo" href="%s/generate" target="_blank">Create your repository</a>`, link)
}

// JavaRef links to the java sources of an assignment.  dir, when set, is
// used instead of lesson/assignment.
func (h *Helpers) JavaRef(level, module, lesson, assignment, dir any) string {
	link := h.RepoLink(level, module)
	if link == "" {
		return ""
	}
	sub := strings.Trim(ToString(dir), "/")
	if sub == "" {
		parts := []string{}
		for _, p := range []string{ToString(lesson), ToString(assignment)} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		sub = strings.Join(parts, "/")
	}
	target := link + "/tree/master/src/"
	if sub != "" {
		target += sub + "/"
	}
	return fmt.Sprintf("[View the Java source](%s)", target)
}

// FuncMap returns the page bound helpers under their template names.
func (h *Helpers) FuncMap() map[string]any {
	return map[string]any{
		"trinket":        h.Trinket,
		"trinket_iframe": TrinketIFrame,
		"read_code":      h.ReadCode,
		"goal_image":     h.GoalImage,
		"javaref":        h.JavaRef,
		"reporef":        h.RepoRef,
		"forkrepo":       h.ForkRepo,
	}
}
