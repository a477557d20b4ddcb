package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhamidi/doclet/doclet"
	"github.com/dhamidi/doclet/java"
)

func testClasses() *java.ClassSet {
	return java.NewClassSet(
		&java.ClassModel{Name: "com.example.Item", Kind: java.ClassKindClass},
		&java.ClassModel{Name: "com.example.Color", Kind: java.ClassKindEnum},
		&java.ClassModel{
			Name: "com.example.Order",
			Kind: java.ClassKindClass,
			Annotations: []java.AnnotationModel{
				{Type: "javax.xml.bind.annotation.XmlRootElement", Values: map[string]any{"name": "purchase"}},
			},
		},
		&java.ClassModel{Name: "com.example.Page", Kind: java.ClassKindClass},
	)
}

func TestTypeName(t *testing.T) {
	tr := New(testClasses())

	tests := []struct {
		name string
		typ  java.TypeModel
		want doclet.Name
	}{
		{"int", java.TypeModel{Name: "int"}, doclet.Name{Value: "integer", Format: "int32"}},
		{"boxed long", java.TypeModel{Name: "java.lang.Long"}, doclet.Name{Value: "integer", Format: "int64"}},
		{"simple string", java.TypeModel{Name: "String"}, doclet.Name{Value: "string"}},
		{"date", java.TypeModel{Name: "java.util.Date"}, doclet.Name{Value: "string", Format: "date-time"}},
		{"void", java.TypeModel{Name: "void"}, doclet.Name{Value: "void"}},
		{"byte array", java.TypeModel{Name: "byte", ArrayDepth: 1}, doclet.Name{Value: "string", Format: "byte"}},
		{"array", java.TypeModel{Name: "com.example.Item", ArrayDepth: 1}, doclet.Name{Value: "array"}},
		{"list", java.NewType("java.util.List", java.TypeModel{Name: "com.example.Item"}), doclet.Name{Value: "array"}},
		{"map", java.NewType("java.util.Map", java.TypeModel{Name: "String"}, java.TypeModel{Name: "Integer"}), doclet.Name{Value: "object"}},
		{"model", java.TypeModel{Name: "com.example.Item"}, doclet.Name{Value: "Item"}},
		{"root element", java.TypeModel{Name: "com.example.Order"}, doclet.Name{Value: "purchase"}},
		{"enum", java.TypeModel{Name: "com.example.Color"}, doclet.Name{Value: "string"}},
		{"generic model", java.NewType("com.example.Page", java.TypeModel{Name: "com.example.Item"}), doclet.Name{Value: "Page-Item"}},
		{"unknown class", java.TypeModel{Name: "org.other.Thing"}, doclet.Name{Value: "Thing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.TypeName(tt.typ, nil))
		})
	}

	t.Run("views", func(t *testing.T) {
		got := tr.TypeName(java.TypeModel{Name: "com.example.Item"}, []string{"com.example.Views.Public"})
		assert.Equal(t, "Item-Public", got.Value)
	})
}

func TestParameterTypeName(t *testing.T) {
	tr := New(testClasses())
	stream := java.TypeModel{Name: "java.io.InputStream"}

	assert.Equal(t, doclet.Name{Value: "File"}, tr.ParameterTypeName(true, nil, stream))
	assert.Equal(t, doclet.Name{Value: "string", Format: "byte"}, tr.ParameterTypeName(false, nil, stream))
	assert.Equal(t, doclet.Name{Value: "integer", Format: "int64"}, tr.ParameterTypeName(false, nil, java.TypeModel{Name: "long"}))
}
