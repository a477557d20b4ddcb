package java

import (
	"fmt"
	"strconv"
	"strings"
)

// SimpleType is the annotation type without its package.
func (a AnnotationModel) SimpleType() string {
	return extractSimpleName(a.Type)
}

// Matches reports whether the annotation is of the given type. A qualified
// name matches exactly; an annotation recorded by simple name (unresolved
// import) matches on the simple name.
func (a AnnotationModel) Matches(name string) bool {
	typ := strings.TrimPrefix(a.Type, "@")
	if typ == name {
		return true
	}
	if !strings.Contains(typ, ".") {
		return typ == extractSimpleName(name)
	}
	return false
}

func (a AnnotationModel) MatchesAny(names []string) bool {
	for _, name := range names {
		if a.Matches(name) {
			return true
		}
	}
	return false
}

// Value returns the element value under key as a string. Array values yield
// their first element.
func (a AnnotationModel) Value(key string) (string, bool) {
	raw, ok := a.Values[key]
	if !ok || raw == nil {
		return "", false
	}
	if list, ok := raw.([]any); ok {
		if len(list) == 0 {
			return "", false
		}
		raw = list[0]
	}
	return elementString(raw), true
}

// ValueList returns the element value under key as a list of strings.
func (a AnnotationModel) ValueList(key string) []string {
	raw, ok := a.Values[key]
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			result = append(result, elementString(item))
		}
		return result
	case []string:
		result := make([]string, len(v))
		for i, item := range v {
			result[i] = Unquote(item)
		}
		return result
	}
	return []string{elementString(raw)}
}

// FindAnnotation returns the first annotation in anns matching any of names.
func FindAnnotation(anns []AnnotationModel, names []string) (AnnotationModel, bool) {
	for _, a := range anns {
		if a.MatchesAny(names) {
			return a, true
		}
	}
	return AnnotationModel{}, false
}

func HasAnnotation(anns []AnnotationModel, names []string) bool {
	_, ok := FindAnnotation(anns, names)
	return ok
}

// Unquote strips Java string or char literal quotes, leaving other text as is.
func Unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"') {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

func elementString(v any) string {
	switch val := v.(type) {
	case string:
		return Unquote(val)
	case map[string]any:
		// enum constant as produced by the class file reader
		if c, ok := val["value"]; ok {
			return fmt.Sprint(c)
		}
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
