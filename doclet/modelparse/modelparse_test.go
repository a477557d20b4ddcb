package modelparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/doclet/doclet"
	"github.com/dhamidi/doclet/doclet/translate"
	"github.com/dhamidi/doclet/java"
)

func ann(typ string, values map[string]any) java.AnnotationModel {
	return java.AnnotationModel{Type: typ, Values: values}
}

func fixtureClasses() *java.ClassSet {
	return java.NewClassSet(
		&java.ClassModel{
			Name:    "com.example.Item",
			Javadoc: "/** An item of the catalog. */",
			Fields: []java.FieldModel{
				{Name: "id", Type: java.TypeModel{Name: "long"}, Annotations: []java.AnnotationModel{ann("javax.validation.constraints.NotNull", nil)}},
				{Name: "displayName", Type: java.TypeModel{Name: "java.lang.String"}, Annotations: []java.AnnotationModel{
					ann("com.fasterxml.jackson.annotation.JsonProperty", map[string]any{"value": "name"}),
				}},
				{Name: "color", Type: java.TypeModel{Name: "com.example.Color"}},
				{Name: "tags", Type: java.NewType("java.util.Set", java.TypeModel{Name: "String"})},
				{Name: "owner", Type: java.TypeModel{Name: "com.example.User"}, Javadoc: "/** @optional */"},
				{Name: "secret", Type: java.TypeModel{Name: "String"}, Annotations: []java.AnnotationModel{ann("com.fasterxml.jackson.annotation.JsonIgnore", nil)}},
				{Name: "COUNT", Type: java.TypeModel{Name: "int"}, IsStatic: true},
			},
		},
		&java.ClassModel{
			Name: "com.example.User",
			Fields: []java.FieldModel{
				{Name: "name", Type: java.TypeModel{Name: "String"}},
				{Name: "friends", Type: java.NewType("java.util.List", java.TypeModel{Name: "com.example.User"})},
			},
		},
		&java.ClassModel{
			Name: "com.example.Color", Kind: java.ClassKindEnum,
			EnumConstants: []java.EnumConstantModel{{Name: "RED"}, {Name: "BLUE"}},
		},
		&java.ClassModel{
			Name:           "com.example.Page",
			TypeParameters: []java.TypeParameterModel{{Name: "T"}},
			Fields: []java.FieldModel{
				{Name: "items", Type: java.NewType("java.util.List", java.TypeModel{Name: "T"})},
				{Name: "total", Type: java.TypeModel{Name: "int"}},
			},
		},
		&java.ClassModel{
			Name: "com.example.Query",
			Fields: []java.FieldModel{
				{Name: "limit", Type: java.TypeModel{Name: "int"}, Annotations: []java.AnnotationModel{
					ann("javax.ws.rs.QueryParam", map[string]any{"value": "max"}),
					ann("javax.ws.rs.DefaultValue", map[string]any{"value": "10"}),
					ann("javax.validation.constraints.Max", map[string]any{"value": "100"}),
				}},
				{Name: "tenant", Type: java.TypeModel{Name: "String"}, Annotations: []java.AnnotationModel{
					ann("javax.ws.rs.HeaderParam", map[string]any{"value": "X-Tenant"}),
				}},
				{Name: "cache", Type: java.TypeModel{Name: "String"}},
			},
		},
	)
}

func newParser() *Parser {
	classes := fixtureClasses()
	return New(doclet.DefaultOptions(), translate.New(classes), classes)
}

func byID(models []doclet.Model) map[string]doclet.Model {
	result := make(map[string]doclet.Model)
	for _, m := range models {
		result[m.ID] = m
	}
	return result
}

func TestParseModels(t *testing.T) {
	p := newParser()

	models, rootID, err := p.ParseModels(java.TypeModel{Name: "com.example.Item"}, doclet.ModelOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Item", rootID)

	index := byID(models)
	require.Contains(t, index, "Item")
	require.Contains(t, index, "User")

	item := index["Item"]
	assert.Equal(t, "An item of the catalog.", item.Description)
	assert.Equal(t, []string{"id"}, item.Required)
	assert.Equal(t, []string{"owner"}, item.Optional)

	var names []string
	for _, prop := range item.Properties {
		names = append(names, prop.Name)
	}
	assert.Equal(t, []string{"id", "name", "color", "tags", "owner"}, names)

	t.Run("enum", func(t *testing.T) {
		color, ok := item.Property("color")
		require.True(t, ok)
		assert.Equal(t, "string", color.Type)
		assert.Equal(t, []string{"RED", "BLUE"}, color.Enum)
	})

	t.Run("set", func(t *testing.T) {
		tags, _ := item.Property("tags")
		assert.Equal(t, "array", tags.Type)
		require.NotNil(t, tags.UniqueItems)
		assert.True(t, *tags.UniqueItems)
		assert.Equal(t, &doclet.Items{Type: "string"}, tags.Items)
	})

	t.Run("reference", func(t *testing.T) {
		owner, _ := item.Property("owner")
		assert.Equal(t, "User", owner.Ref)
	})

	t.Run("self reference", func(t *testing.T) {
		friends, ok := index["User"].Property("friends")
		require.True(t, ok)
		assert.Equal(t, &doclet.Items{Ref: "User"}, friends.Items)
	})
}

func TestParseModelsNotModelShaped(t *testing.T) {
	p := newParser()

	for _, typ := range []java.TypeModel{
		{Name: "int"},
		{Name: "java.lang.String"},
		{Name: "com.example.Color"},
		{Name: "org.unknown.Thing"},
	} {
		models, rootID, err := p.ParseModels(typ, doclet.ModelOptions{})
		require.NoError(t, err)
		assert.Empty(t, models, typ.Name)
		assert.Empty(t, rootID, typ.Name)
	}

	t.Run("collection of models", func(t *testing.T) {
		models, rootID, err := p.ParseModels(java.NewType("java.util.List", java.TypeModel{Name: "com.example.User"}), doclet.ModelOptions{})
		require.NoError(t, err)
		assert.Empty(t, rootID)
		assert.Contains(t, byID(models), "User")
	})
}

func TestParseModelsTypeVariables(t *testing.T) {
	p := newParser()

	t.Run("type arguments", func(t *testing.T) {
		models, rootID, err := p.ParseModels(java.NewType("com.example.Page", java.TypeModel{Name: "com.example.User"}), doclet.ModelOptions{})
		require.NoError(t, err)
		assert.Equal(t, "Page-User", rootID)
		page := byID(models)["Page-User"]
		items, ok := page.Property("items")
		require.True(t, ok)
		assert.Equal(t, &doclet.Items{Ref: "User"}, items.Items)
	})

	t.Run("bound variables", func(t *testing.T) {
		models, rootID, err := p.ParseModels(java.TypeModel{Name: "com.example.Page"}, doclet.ModelOptions{
			VarsToTypes: map[string]java.TypeModel{"T": {Name: "long"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "Page", rootID)
		items, _ := byID(models)["Page"].Property("items")
		assert.Equal(t, &doclet.Items{Type: "integer", Format: "int64"}, items.Items)
	})
}

func TestParseModelsComposite(t *testing.T) {
	p := newParser()

	models, rootID, err := p.ParseModels(java.TypeModel{Name: "com.example.Query"}, doclet.ModelOptions{Composite: true})
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "Query", rootID)

	root := models[0]
	require.Len(t, root.Properties, 2)

	limit := root.Properties[0]
	assert.Equal(t, "max", limit.Name)
	assert.Equal(t, "limit", limit.RawFieldName)
	assert.Equal(t, doclet.CategoryQuery, limit.ParamCategory)
	assert.Equal(t, "10", limit.DefaultValue)
	assert.Equal(t, "100", limit.Maximum)

	tenant := root.Properties[1]
	assert.Equal(t, "X-Tenant", tenant.Name)
	assert.Equal(t, doclet.CategoryHeader, tenant.ParamCategory)
}
