package doclet

import (
	"strings"
	"unicode"
)

// SanitizePath reduces every {name: regex} placeholder of a path template
// to {name} and removes whitespace inside placeholders. Text outside braces
// is left alone, so sanitizing twice gives the same result.
func SanitizePath(path string) string {
	if !strings.Contains(path, "{") {
		return path
	}

	var sb strings.Builder
	sb.Grow(len(path))

	depth := 0
	inRegex := false
	for _, r := range path {
		switch {
		case r == '{':
			depth++
			if depth == 1 {
				inRegex = false
				sb.WriteRune(r)
			}
		case r == '}' && depth > 0:
			depth--
			if depth == 0 {
				sb.WriteRune(r)
			}
		case depth == 0:
			sb.WriteRune(r)
		case depth == 1 && r == ':':
			inRegex = true
		case inRegex || depth > 1 || unicode.IsSpace(r):
			// dropped
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// PathPlaceholders returns the names of the {name} and {name: regex}
// placeholders of a path template in order of appearance.
func PathPlaceholders(path string) []string {
	var names []string
	depth := 0
	start := 0
	for i, r := range path {
		switch r {
		case '{':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				name := path[start:i]
				if j := strings.IndexByte(name, ':'); j >= 0 {
					name = name[:j]
				}
				if name = strings.TrimSpace(name); name != "" {
					names = append(names, name)
				}
			}
		}
	}
	return names
}

// joinPath appends a path fragment to a prefix. The result starts with '/'
// and has no trailing separator.
func joinPath(prefix, fragment string) string {
	p := strings.TrimRight(prefix, "/")
	if fragment != "" && fragment != "/" {
		if !strings.HasPrefix(fragment, "/") {
			p += "/"
		}
		p += fragment
	}
	p = strings.TrimRight(p, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
