package javadoc

import (
	"testing"
)

func TestParseSimpleText(t *testing.T) {
	doc := Parse("/** Simple text. */")

	if doc.Body != "Simple text." {
		t.Errorf("expected 'Simple text.', got %q", doc.Body)
	}
	if len(doc.Tags) != 0 {
		t.Errorf("expected no tags, got %+v", doc.Tags)
	}
}

func TestParseCodeTagWithBraces(t *testing.T) {
	doc := Parse("/** Use {@code class Foo { int x; }} for this. */")

	expected := "Use class Foo { int x; } for this."
	if doc.Body != expected {
		t.Errorf("expected %q, got %q", expected, doc.Body)
	}
}

func TestParseLinkTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/** See {@link java.util.List#add(Object)}. */", "See java.util.List.add(Object)."},
		{"/** See {@link #process}. */", "See process."},
		{"/** See {@linkplain Foo the foo}. */", "See the foo."},
		{"/** Max is {@value #MAX}. */", "Max is MAX."},
		{"/** {@inheritDoc} */", ""},
	}

	for _, tt := range tests {
		doc := Parse(tt.input)
		if doc.Body != tt.expected {
			t.Errorf("Parse(%q).Body = %q, want %q", tt.input, doc.Body, tt.expected)
		}
	}
}

func TestParseBlockTags(t *testing.T) {
	input := `/**
 * Returns the items.
 *
 * @param id the item id
 *        spanning two lines
 * @return the items
 * @responseMessage 404 not found ` + "`NotFound" + `
 */`

	doc := Parse(input)

	if doc.Body != "Returns the items." {
		t.Errorf("unexpected body %q", doc.Body)
	}
	if len(doc.Tags) != 3 {
		t.Fatalf("expected 3 tags, got %d: %+v", len(doc.Tags), doc.Tags)
	}

	if doc.Tags[0].Name != "param" {
		t.Errorf("expected param tag, got %q", doc.Tags[0].Name)
	}
	if doc.Tags[0].Text != "id the item id\n       spanning two lines" {
		t.Errorf("unexpected param text %q", doc.Tags[0].Text)
	}
	if doc.Tags[2].Name != "responseMessage" || doc.Tags[2].Text != "404 not found `NotFound" {
		t.Errorf("unexpected custom tag %+v", doc.Tags[2])
	}
}

func TestParseTagOnFirstLine(t *testing.T) {
	doc := Parse("/** @exclude */")

	if doc.Body != "" {
		t.Errorf("expected empty body, got %q", doc.Body)
	}
	if !doc.HasTag("exclude") {
		t.Errorf("expected exclude tag, got %+v", doc.Tags)
	}
}

func TestParseWithoutDelimiters(t *testing.T) {
	doc := Parse("Lists tasks.\n@summary all tasks")

	if doc.Body != "Lists tasks." {
		t.Errorf("unexpected body %q", doc.Body)
	}
	if v, ok := doc.TagValue("summary"); !ok || v != "all tasks" {
		t.Errorf("TagValue(summary) = %q, %v", v, ok)
	}
}

func TestAtSignInsideText(t *testing.T) {
	doc := Parse("/** Mail admin@example.com for access. */")

	if doc.Body != "Mail admin@example.com for access." {
		t.Errorf("unexpected body %q", doc.Body)
	}
	if len(doc.Tags) != 0 {
		t.Errorf("expected no tags, got %+v", doc.Tags)
	}
}

func TestFirstSentence(t *testing.T) {
	tests := []struct {
		body     string
		expected string
	}{
		{"Returns the items. Extra detail.", "Returns the items."},
		{"Uses version 1.2 of the API. More.", "Uses version 1.2 of the API."},
		{"No period here", "No period here"},
		{"Short<p>Long part.", "Short"},
		{"", ""},
	}

	for _, tt := range tests {
		doc := &DocComment{Body: tt.body}
		if got := doc.FirstSentence(); got != tt.expected {
			t.Errorf("FirstSentence(%q) = %q, want %q", tt.body, got, tt.expected)
		}
	}
}

func TestTagValuesOrder(t *testing.T) {
	doc := Parse(`/**
 * @errorResponse 500 boom
 * @responseMessage 404 missing
 * @errorResponse 400 bad
 */`)

	got := doc.TagValues("responseMessage", "errorResponse")
	want := []string{"404 missing", "500 boom", "400 bad"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestParamText(t *testing.T) {
	doc := Parse(`/**
 * @param taskId the task
 * @param limit max results
 */`)

	if got := doc.ParamText("limit"); got != "max results" {
		t.Errorf("ParamText(limit) = %q", got)
	}
	if got := doc.ParamText("missing"); got != "" {
		t.Errorf("ParamText(missing) = %q", got)
	}
}

func TestNilDocComment(t *testing.T) {
	var doc *DocComment
	if doc.HasTag("x") || doc.FirstSentence() != "" || doc.ParamText("x") != "" {
		t.Error("nil DocComment should behave as empty")
	}
}
