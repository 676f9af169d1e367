package model

import (
	"strconv"
	"strings"
)

// Document is a flexible map representing one JSON record of the dataset.
// A company record looks like:
//
//	{"detail_url": "...", "name": "...", "details": {"description": "...", "products_manufactured": "..."}}
//
// Nested values are addressed with dotted paths such as "details.description".
type Document map[string]interface{}

// Lookup returns the raw value stored under a dotted path.
// A key that itself contains the full path takes precedence over nested traversal.
func (d Document) Lookup(path string) (interface{}, bool) {
	if d == nil || path == "" {
		return nil, false
	}
	if v, ok := d[path]; ok {
		return v, true
	}

	var current interface{} = map[string]interface{}(d)
	for _, segment := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		next, exists := m[segment]
		if !exists {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Text returns the text indexed and displayed for a path.
// Strings are returned as is, numbers and booleans are formatted, arrays of
// scalars are joined with a single space. Missing, null or object values yield "".
func (d Document) Text(path string) (string, bool) {
	v, ok := d.Lookup(path)
	if !ok || v == nil {
		return "", false
	}
	return valueText(v)
}

// GetReference returns the reference key stored in refField if it is a non-empty string.
func (d Document) GetReference(refField string) (string, bool) {
	if ref, ok := d[refField]; ok {
		if str, sok := ref.(string); sok {
			if strings.TrimSpace(str) != "" {
				return str, true
			}
		}
	}
	return "", false
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Document:
		return m, true
	case map[string]string:
		converted := make(map[string]interface{}, len(m))
		for k, val := range m {
			converted[k] = val
		}
		return converted, true
	}
	return nil, false
}

func valueText(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	case []string:
		return strings.Join(val, " "), true
	case []interface{}: // JSON arrays are unmarshalled to []interface{}
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if item == nil {
				continue
			}
			if _, nested := asMap(item); nested {
				continue
			}
			if text, ok := valueText(item); ok && text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, " "), true
	default:
		return "", false
	}
}
