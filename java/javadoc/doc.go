// Package javadoc parses Javadoc comments into description text and block
// tags.
package javadoc

import (
	"strings"
)

// DocComment is a parsed Javadoc comment.
type DocComment struct {
	Body string // Main description, inline tags rendered as text
	Tags []Tag  // Block tags in order of appearance
}

// Tag is a block tag such as @param or a custom @responseMessage.
type Tag struct {
	Name string
	Text string
}

// blockStarts end the first sentence even without a period.
var blockStarts = []string{"<p>", "<p ", "<pre", "<ul", "<ol", "<dl", "<table", "<h1", "<h2", "<h3", "<h4", "<hr", "<blockquote"}

// FirstSentence returns the description up to and including the first
// period followed by whitespace, or up to the first block-level HTML tag.
func (d *DocComment) FirstSentence() string {
	if d == nil {
		return ""
	}
	body := d.Body
	end := len(body)

	lower := strings.ToLower(body)
	for _, marker := range blockStarts {
		if i := strings.Index(lower, marker); i >= 0 && i < end {
			end = i
		}
	}

	for i := 0; i < end; i++ {
		if body[i] != '.' {
			continue
		}
		if i+1 == len(body) || isWhitespace(rune(body[i+1])) {
			end = i + 1
			break
		}
	}

	return strings.TrimSpace(body[:end])
}

// TagValues returns the text of every tag with one of the given names,
// grouped by name in the order the names are given.
func (d *DocComment) TagValues(names ...string) []string {
	if d == nil {
		return nil
	}
	var values []string
	for _, name := range names {
		for _, tag := range d.Tags {
			if tag.Name == name {
				values = append(values, tag.Text)
			}
		}
	}
	return values
}

// TagValue returns the text of the first tag matching one of names.
func (d *DocComment) TagValue(names ...string) (string, bool) {
	values := d.TagValues(names...)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (d *DocComment) HasTag(names ...string) bool {
	if d == nil {
		return false
	}
	for _, name := range names {
		for _, tag := range d.Tags {
			if tag.Name == name {
				return true
			}
		}
	}
	return false
}

// ParamText returns the description given by "@param name ...".
func (d *DocComment) ParamText(name string) string {
	for _, text := range d.TagValues("param") {
		first, rest := splitWord(text)
		if first == name {
			return rest
		}
	}
	return ""
}

// IsDeprecated reports whether the comment carries @deprecated.
func (d *DocComment) IsDeprecated() bool {
	return d.HasTag("deprecated")
}

func splitWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool { return isWhitespace(r) })
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
