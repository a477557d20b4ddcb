package doclet

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ResourceName turns a resource path into a file name stem: accents are
// folded, placeholders keep their names and every other run of characters
// outside [A-Za-z0-9_-] becomes '_'. The root path is named "root".
func ResourceName(resourcePath string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, resourcePath)
	if err != nil {
		folded = resourcePath
	}
	name := strings.Trim(nonFileChars.ReplaceAllString(folded, "_"), "_")
	if name == "" {
		return "root"
	}
	return name
}
