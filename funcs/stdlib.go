package funcs

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ToString formats any value; nil becomes "".
func ToString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	}
	return fmt.Sprintf("%v", v)
}

func ToInt(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case int8:
		return int(val)
	case int16:
		return int(val)
	case int32:
		return int(val)
	case int64:
		return int(val)
	case uint:
		return int(val)
	case uint8:
		return int(val)
	case uint16:
		return int(val)
	case uint32:
		return int(val)
	case uint64:
		return int(val)
	case float32:
		return int(val)
	case float64:
		return int(val)
	case string:
		out, _ := strconv.Atoi(strings.TrimSpace(val))
		return out
	}
	return 0
}

func ToFloat(v any) float64 {
	switch val := v.(type) {
	case string:
		out, _ := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return out
	case float32:
		return float64(val)
	case float64:
		return val
	}
	return float64(ToInt(v))
}

var nonAlnum = regexp.MustCompile("[^a-zA-Z0-9]+")

func Slugify(input string) string {
	slug := strings.TrimSpace(nonAlnum.ReplaceAllString(input, " "))
	return strings.ToLower(strings.ReplaceAll(slug, " ", "-"))
}

func ValuesToDict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, errors.New("invalid dict call")
	}
	dict := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		dict[key] = values[i+1]
	}
	return dict, nil
}
