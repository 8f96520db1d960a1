package lessongen

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
	gut "github.com/panyam/goutils/utils"
	"gopkg.in/yaml.v2"
)

// ParseFrontMatter splits text into its front matter and the remaining body.
// Text without front matter yields an empty map and the text unchanged.
func ParseFrontMatter(text string) (map[string]any, string, error) {
	meta := make(map[string]any)
	rest, err := frontmatter.Parse(strings.NewReader(text), &meta)
	if err != nil {
		return nil, text, err
	}
	return meta, string(rest), nil
}

// FirstH1 returns the text of the first non empty "# " line of markdown, or
// "" if there is none.
func FirstH1(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		if !strings.HasPrefix(line, "# ") {
			continue
		}
		if title := strings.TrimSpace(strings.TrimPrefix(line, "# ")); title != "" {
			return title
		}
	}
	return ""
}

// FirstH1InFile is FirstH1 over the contents of a file.
func FirstH1InFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return FirstH1(string(data)), nil
}

// stringValue returns meta[key] as a string if it is one.
func stringValue(meta map[string]any, key string) (string, bool) {
	if meta == nil {
		return "", false
	}
	if val, ok := meta[key]; ok && val != nil {
		if s, ok := val.(string); ok {
			return s, true
		}
		return fmt.Sprintf("%v", val), true
	}
	return "", false
}

// normalizeYAML turns the map[interface{}]interface{} values yaml.v2 produces
// into map[string]any all the way down so templates and merges see one shape.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case yaml.MapSlice:
		out := make(map[string]any, len(t))
		for _, item := range t {
			out[fmt.Sprintf("%v", item.Key)] = normalizeYAML(item.Value)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	}
	return v
}

// readYAMLFile decodes the yaml file at path into out.
func readYAMLFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return yaml.Unmarshal(data, out)
}

// expandPath expands ~ and cleans p.  Empty stays empty.
func expandPath(p string) string {
	if p == "" {
		return ""
	}
	return gut.ExpandUserPath(p)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
