package java

import (
	"reflect"
	"testing"
)

func TestAnnotationValues(t *testing.T) {
	a := AnnotationModel{
		Type: "javax.ws.rs.Produces",
		Values: map[string]any{
			"value": []any{`"application/json"`, `"text/plain"`},
			"name":  `"id"`,
			"empty": []any{},
			"level": map[string]any{"value": "HIGH"},
			"max":   float64(10),
		},
	}

	tests := []struct {
		key    string
		want   string
		wantOK bool
		list   []string
	}{
		{"value", "application/json", true, []string{"application/json", "text/plain"}},
		{"name", "id", true, []string{"id"}},
		{"empty", "", false, []string{}},
		{"level", "HIGH", true, []string{"HIGH"}},
		{"max", "10", true, []string{"10"}},
		{"missing", "", false, nil},
	}
	for _, tt := range tests {
		got, ok := a.Value(tt.key)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Value(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
		if list := a.ValueList(tt.key); !reflect.DeepEqual(list, tt.list) {
			t.Errorf("ValueList(%q) = %#v, want %#v", tt.key, list, tt.list)
		}
	}
}

func TestAnnotationValueListFromStrings(t *testing.T) {
	a := AnnotationModel{Values: map[string]any{"value": []string{`"a"`, "b"}}}
	if got := a.ValueList("value"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ValueList = %#v", got)
	}
}
