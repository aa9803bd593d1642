package scoring

import (
	"strconv"
	"strings"
)

// Answers is a normalized, read-only view over a questionnaire answer bag.
// The zero value is valid and reports every key as absent.
type Answers struct {
	values map[string]string
}

// Normalize converts a loosely typed answer bag into Answers. A nil bag is
// valid input. Booleans become "yes"/"no", numbers are formatted, strings are
// trimmed, and values of any other type are dropped.
func Normalize(raw map[string]any) Answers {
	if len(raw) == 0 {
		return Answers{}
	}

	values := make(map[string]string, len(raw))
	for key, v := range raw {
		s, ok := stringify(v)
		if !ok || s == "" {
			continue
		}
		values[key] = s
	}
	return Answers{values: values}
}

func stringify(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), true
	case bool:
		if val {
			return "yes", true
		}
		return "no", true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	default:
		return "", false
	}
}

// Get returns the raw (trimmed) answer for key.
func (a Answers) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Token returns the lookup token for key: lower-cased, or "" when absent.
func (a Answers) Token(key string) string {
	v, ok := a.values[key]
	if !ok {
		return ""
	}
	return strings.ToLower(v)
}

// Len reports how many keys carry a usable value.
func (a Answers) Len() int {
	return len(a.values)
}

// countYes counts every case-insensitive occurrence of "yes" in the answer,
// including inside longer words.
func (a Answers) countYes(key string) int {
	return strings.Count(a.Token(key), "yes")
}
