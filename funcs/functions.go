package funcs

import (
	"strings"
)

// DefaultFuncMap returns the generic helpers available to every template.
// They do not depend on the page being rendered.
func DefaultFuncMap() map[string]any {
	return map[string]any{
		"String": ToString,
		"Int":    ToInt,
		"Float":  ToFloat,
		"Add": func(vals ...any) (out float64) {
			for _, v := range vals {
				out += ToFloat(v)
			}
			return
		},
		"Sub": func(a any, b any) float64 { return ToFloat(a) - ToFloat(b) },

		"JoinA": func(delim string, parts []string) string {
			return strings.Join(parts, delim)
		},
		"Join": func(delim string, parts ...string) string {
			return strings.Join(parts, delim)
		},
		"Split":     strings.Split,
		"HasPrefix": strings.HasPrefix,
		"HasSuffix": strings.HasSuffix,
		"Replace":   strings.Replace,
		"Slugify":   Slugify,
		"dict":      ValuesToDict,

		"strip_html": StripHTML,
		"yaml":       ToYAML,
	}
}
