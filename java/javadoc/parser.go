package javadoc

import (
	"strings"
	"unicode"
)

// Parser is a recursive-descent parser for Javadoc comments. It accepts the
// comment with or without its /** */ delimiters.
type Parser struct {
	input       []rune
	pos         int
	len         int
	atLineStart bool
}

// Parse parses a Javadoc comment string.
func Parse(javadoc string) *DocComment {
	p := &Parser{
		input: []rune(javadoc),
	}
	p.len = len(p.input)
	return p.parseDocComment()
}

func (p *Parser) parseDocComment() *DocComment {
	p.skipCommentStart()

	doc := &DocComment{}
	doc.Body = strings.TrimSpace(p.parseContent())
	doc.Tags = p.parseBlockTags()

	return doc
}

// skipCommentStart skips the leading /** and any whitespace/asterisks.
func (p *Parser) skipCommentStart() {
	p.skipWhitespace()
	if p.match("/**") {
		p.advance(3)
	}
	p.skipLinePrefix()
	p.atLineStart = true
}

// skipLinePrefix skips leading whitespace and a single asterisk at the start of a line.
func (p *Parser) skipLinePrefix() {
	p.skipHorizontalWhitespace()
	if p.peek() == '*' && p.peekAt(1) != '/' {
		p.advance(1)
		if p.peek() == ' ' {
			p.advance(1)
		}
	}
}

// parseContent reads text until a block tag at the start of a line or the
// end of the comment.
func (p *Parser) parseContent() string {
	var sb strings.Builder

	for p.pos < p.len {
		ch := p.peek()

		if ch == '*' && p.peekAt(1) == '/' {
			break
		}
		if ch == '@' && p.atLineStart {
			break
		}

		switch ch {
		case '\r':
			p.advance(1)
		case '\n':
			sb.WriteRune('\n')
			p.advance(1)
			p.skipLinePrefix()
			p.atLineStart = true
		case ' ', '\t':
			sb.WriteRune(ch)
			p.advance(1)
		case '{':
			p.atLineStart = false
			if p.peekAt(1) == '@' {
				sb.WriteString(p.parseInlineTag())
			} else {
				sb.WriteRune(ch)
				p.advance(1)
			}
		default:
			p.atLineStart = false
			sb.WriteRune(ch)
			p.advance(1)
		}
	}

	return sb.String()
}

// parseInlineTag renders an inline tag like {@code ...} or {@link ...} as text.
func (p *Parser) parseInlineTag() string {
	p.advance(2)
	name := p.readTagName()
	p.skipHorizontalWhitespace()
	content := stripLinePrefixes(p.readBalancedContent())
	if p.peek() == '}' {
		p.advance(1)
	}

	switch name {
	case "code", "literal":
		return content
	case "link", "linkplain":
		ref, label := splitWord(content)
		if label != "" {
			return label
		}
		return formatReference(ref)
	case "value":
		return formatReference(content)
	case "inheritDoc", "docRoot":
		return ""
	}
	return content
}

// parseBlockTags parses block tags until end of comment.
func (p *Parser) parseBlockTags() []Tag {
	var tags []Tag

	for p.pos < p.len {
		p.skipWhitespace()
		p.skipLinePrefix()

		if p.match("*/") {
			break
		}

		if p.peek() != '@' {
			p.advance(1)
			continue
		}

		p.advance(1)
		name := p.readTagName()
		if name == "" {
			continue
		}

		p.skipHorizontalWhitespace()
		p.atLineStart = false
		text := strings.TrimSpace(p.parseContent())
		tags = append(tags, Tag{Name: name, Text: text})
	}

	return tags
}

// formatReference turns "java.util.List#add(Object)" into "java.util.List.add(Object)".
func formatReference(ref string) string {
	ref = strings.TrimPrefix(ref, "#")
	return strings.ReplaceAll(ref, "#", ".")
}

func stripLinePrefixes(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		line := strings.TrimLeft(lines[i], " \t")
		line = strings.TrimPrefix(line, "*")
		lines[i] = strings.TrimPrefix(line, " ")
	}
	return strings.Join(lines, "\n")
}

func (p *Parser) peek() rune {
	if p.pos >= p.len {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) peekAt(offset int) rune {
	pos := p.pos + offset
	if pos >= p.len || pos < 0 {
		return 0
	}
	return p.input[pos]
}

func (p *Parser) advance(n int) {
	p.pos += n
	if p.pos > p.len {
		p.pos = p.len
	}
}

func (p *Parser) match(s string) bool {
	if p.pos+len(s) > p.len {
		return false
	}
	for i, ch := range []rune(s) {
		if p.input[p.pos+i] != ch {
			return false
		}
	}
	return true
}

func (p *Parser) skipWhitespace() {
	for p.pos < p.len && isWhitespace(p.peek()) {
		p.advance(1)
	}
}

func (p *Parser) skipHorizontalWhitespace() {
	for p.pos < p.len && (p.peek() == ' ' || p.peek() == '\t') {
		p.advance(1)
	}
}

func (p *Parser) readTagName() string {
	start := p.pos
	for p.pos < p.len && isJavaIdentifierPart(p.peek()) {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

// readBalancedContent reads content until a closing '}', handling nested braces.
func (p *Parser) readBalancedContent() string {
	start := p.pos
	depth := 0

	for p.pos < p.len {
		ch := p.peek()

		if ch == '{' {
			depth++
		} else if ch == '}' {
			if depth == 0 {
				break
			}
			depth--
		} else if ch == '*' && p.peekAt(1) == '/' {
			break
		}
		p.advance(1)
	}

	return strings.TrimSpace(string(p.input[start:p.pos]))
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isJavaIdentifierPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '$'
}
