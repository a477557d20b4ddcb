package doclet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/doclet/doclet"
	"github.com/dhamidi/doclet/java"
)

func TestParseListOfItems(t *testing.T) {
	res := resource("com.example.ItemResource", "/items",
		method("list", typ("java.util.List", "com.example.Item"), "/** Lists all items. */", anns(rs("GET"))),
	)

	decls, err := parse(res, itemClass())
	require.NoError(t, err)
	require.Len(t, decls, 1)

	decl := decls["/items"]
	require.NotNil(t, decl)
	require.Len(t, decl.Apis, 1)
	assert.Equal(t, "/items", decl.Apis[0].Path)
	require.Len(t, decl.Apis[0].Operations, 1)

	op := decl.Apis[0].Operations[0]
	assert.Equal(t, "GET", op.Method)
	assert.Equal(t, "list", op.Nickname)
	assert.Equal(t, "array", op.Type)
	require.NotNil(t, op.Items)
	assert.Equal(t, "Item", op.Items.Ref)
	assert.Equal(t, "Lists all items.", op.Summary)
	assert.Contains(t, decl.Models, "Item")
}

func classPathParamResource() *java.ClassModel {
	pathParam := func(name string) java.AnnotationModel { return rs("PathParam", "value", name) }
	return &java.ClassModel{
		Name:        "com.example.ClassPathParamRequiredResource",
		Annotations: anns(pathAnn("/api/{taskId: [0-9]+}")),
		Fields: []java.FieldModel{
			{Name: "_taskId", Type: java.TypeModel{Name: "long"}, Annotations: anns(pathParam("taskId"))},
		},
		Methods: []java.MethodModel{
			method(java.ConstructorName, java.TypeModel{Name: "void"}, "", nil, param("taskId", "long", pathParam("taskId"))),
			method("getNothing", java.TypeModel{Name: "void"}, "", anns(rs("GET")), param("taskId", "long", pathParam("taskId"))),
			method("deleteNothing", java.TypeModel{Name: "void"}, "", anns(rs("DELETE"))),
			method("getItem", java.TypeModel{Name: "String"}, "", anns(rs("GET"), pathAnn("/{item: [A-Za-z0-9]+}")), param("item", "String", pathParam("item"))),
		},
	}
}

func TestClassPathParamBackfill(t *testing.T) {
	decls, err := parse(classPathParamResource())
	require.NoError(t, err)

	decl := decls["/api/{taskId}"]
	require.NotNil(t, decl, "declarations: %v", decls)

	ops := map[string]*doclet.Operation{
		"getNothing":    operationAt(decl, "/api/{taskId}", "getNothing"),
		"deleteNothing": operationAt(decl, "/api/{taskId}", "deleteNothing"),
		"getItem":       operationAt(decl, "/api/{taskId}/{item}", "getItem"),
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			require.NotNil(t, op)
			p, count := parameterNamed(op, "taskId")
			assert.Equal(t, 1, count)
			assert.Equal(t, doclet.CategoryPath, p.ParamType)
			require.NotNil(t, p.Required)
			assert.True(t, *p.Required)
		})
	}

	item, count := parameterNamed(ops["getItem"], "item")
	assert.Equal(t, 1, count)
	assert.Equal(t, "string", item.Type)
}

func TestPlaceholderBackfillWithoutBinding(t *testing.T) {
	res := resource("com.example.TaskResource", "/api/{taskId}",
		method("list", java.TypeModel{Name: "String"}, "", anns(rs("GET"))),
		method("remove", java.TypeModel{Name: "void"}, "", anns(rs("DELETE"), pathAnn("{sub}")), param("sub", "String", rs("PathParam", "value", "sub"))),
	)

	decls, err := parse(res)
	require.NoError(t, err)

	decl := decls["/api/{taskId}"]
	require.NotNil(t, decl)
	for _, api := range decl.Apis {
		for _, op := range api.Operations {
			p, count := parameterNamed(op, "taskId")
			assert.Equal(t, 1, count, op.Nickname)
			assert.Equal(t, "string", p.Type)
			assert.Equal(t, doclet.CategoryPath, p.ParamType)
			require.NotNil(t, p.Required)
			assert.True(t, *p.Required)
		}
	}
}

func TestSubResource(t *testing.T) {
	parent := resource("com.example.ParentResource", "/parents",
		method("list", java.TypeModel{Name: "String"}, "", anns(rs("GET"))),
		method("children", java.TypeModel{Name: "com.example.ChildResource"}, "",
			anns(pathAnn("/{parentId}/children")), param("parentId", "String", rs("PathParam", "value", "parentId"))),
	)
	child := resource("com.example.ChildResource", "/children",
		method("all", java.TypeModel{Name: "String"}, "", anns(rs("GET"))),
		method("one", java.TypeModel{Name: "String"}, "",
			anns(rs("GET"), pathAnn("/{childId}")), param("childId", "String", rs("PathParam", "value", "childId"))),
	)

	decls, err := parse(parent, child)
	require.NoError(t, err)

	parentDecl := decls["/parents"]
	require.NotNil(t, parentDecl)
	require.Len(t, parentDecl.Apis, 1)
	assert.Equal(t, "/parents", parentDecl.Apis[0].Path)
	for _, op := range parentDecl.Apis[0].Operations {
		assert.NotEqual(t, "children", op.Nickname)
	}

	childDecl := decls["/parents/children"]
	require.NotNil(t, childDecl, "declarations: %v", decls)

	all := operationAt(childDecl, "/parents/{parentId}/children", "all")
	require.NotNil(t, all)
	_, count := parameterNamed(all, "parentId")
	assert.Equal(t, 1, count)

	one := operationAt(childDecl, "/parents/{parentId}/children/{childId}", "one")
	require.NotNil(t, one)
	require.Len(t, one.Parameters, 2)
	assert.Equal(t, "childId", one.Parameters[0].Name)
	assert.Equal(t, "parentId", one.Parameters[1].Name)

	assert.NotContains(t, decls, "/children", "sub-resource class walked outside of its locator")
}

func TestMutualSubResourcesTerminate(t *testing.T) {
	root := resource("com.example.Root", "/root",
		method("a", java.TypeModel{Name: "com.example.A"}, "", anns(pathAnn("a"))),
	)
	a := resource("com.example.A", "",
		method("hello", java.TypeModel{Name: "String"}, "", anns(rs("GET"))),
		method("b", java.TypeModel{Name: "com.example.B"}, "", anns(pathAnn("b"))),
	)
	b := resource("com.example.B", "",
		method("world", java.TypeModel{Name: "String"}, "", anns(rs("GET"))),
		method("a", java.TypeModel{Name: "com.example.A"}, "", anns(pathAnn("a"))),
	)

	decls, err := parse(root, a, b)
	require.NoError(t, err)

	decl := decls["/root"]
	require.NotNil(t, decl)
	assert.NotNil(t, operationAt(decl, "/root/a", "hello"))
	assert.NotNil(t, operationAt(decl, "/root/a/b", "world"))
	assert.Nil(t, operationAt(decl, "/root/a/b/a", "hello"))
}

func TestDuplicateOperationsDropped(t *testing.T) {
	base := resource("com.example.BaseResource", "",
		method("get", java.TypeModel{Name: "String"}, "/** Reads it. */", anns(rs("GET"))),
	)
	base.IsAbstract = true
	sub := resource("com.example.SubResource", "/things",
		method("get", java.TypeModel{Name: "String"}, "", nil),
	)
	sub.SuperClass = base.Name

	decls, err := parse(sub, base)
	require.NoError(t, err)

	decl := decls["/things"]
	require.NotNil(t, decl)
	require.Len(t, decl.Apis, 1)
	require.Len(t, decl.Apis[0].Operations, 1)
	assert.Equal(t, "Reads it.", decl.Apis[0].Operations[0].Summary)
}

func TestDuplicateOperationsDroppedUnderTemplatedPath(t *testing.T) {
	base := resource("com.example.BaseTaskResource", "",
		method("list", java.TypeModel{Name: "String"}, "/** Lists tasks. */", anns(rs("GET"))),
	)
	base.IsAbstract = true
	sub := resource("com.example.TaskResource", "/api/{taskId}",
		method("list", java.TypeModel{Name: "String"}, "", nil),
	)
	sub.SuperClass = base.Name

	decls, err := parse(sub, base)
	require.NoError(t, err)

	decl := decls["/api/{taskId}"]
	require.NotNil(t, decl, "declarations: %v", decls)
	require.Len(t, decl.Apis, 1)
	require.Len(t, decl.Apis[0].Operations, 1)

	op := decl.Apis[0].Operations[0]
	assert.Equal(t, "list", op.Nickname)
	_, count := parameterNamed(op, "taskId")
	assert.Equal(t, 1, count)
}

type fixedModels struct{}

// ParseModels claims the id Thing for every type, with a body that differs
// per type.
func (fixedModels) ParseModels(t java.TypeModel, _ doclet.ModelOptions) ([]doclet.Model, string, error) {
	return []doclet.Model{{ID: "Thing", Description: t.Name}}, "Thing", nil
}

func TestModelCollision(t *testing.T) {
	res := resource("com.example.ThingResource", "/things",
		method("a", java.TypeModel{Name: "com.example.A"}, "", anns(rs("GET"), pathAnn("a"))),
		method("b", java.TypeModel{Name: "com.example.B"}, "", anns(rs("GET"), pathAnn("b"))),
	)
	classes := []*java.ClassModel{res, {Name: "com.example.A"}, {Name: "com.example.B"}}

	_, err := doclet.Parse(doclet.Config{
		Translator: newTranslator(classes),
		Models:     fixedModels{},
		Classes:    classes,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, doclet.ErrModelCollision)
	assert.Contains(t, err.Error(), "ThingResource.b")
}

func TestResourceTagsAndPriority(t *testing.T) {
	res := &java.ClassModel{
		Name:        "com.example.Tagged",
		Annotations: anns(pathAnn("/tagged")),
		Javadoc:     "/**\n * @resourcePriority 3\n * @resourceDescription Tagged things\n */",
		Methods: []java.MethodModel{
			method("get", java.TypeModel{Name: "String"}, "", anns(rs("GET"))),
			method("other", java.TypeModel{Name: "String"}, "/** @resource Other Things */", anns(rs("GET"), pathAnn("other"))),
		},
	}

	decls, err := parse(res)
	require.NoError(t, err)

	tagged := decls["/tagged"]
	require.NotNil(t, tagged)
	assert.Equal(t, 3, tagged.Priority)
	assert.Equal(t, "Tagged things", tagged.Description)

	other := decls["/other_things"]
	require.NotNil(t, other, "declarations: %v", decls)
	assert.NotNil(t, operationAt(other, "/tagged/other", "other"))

	t.Run("bad priority", func(t *testing.T) {
		res.Javadoc = "/** @priority high */"
		_, err := parse(res)
		assert.ErrorIs(t, err, doclet.ErrConfigurationConflict)
	})
}

func TestDefaultErrorType(t *testing.T) {
	res := &java.ClassModel{
		Name:        "com.example.Orders",
		Annotations: anns(pathAnn("/orders")),
		Javadoc:     "/** @defaultErrorType ApiError */",
		Methods: []java.MethodModel{
			method("get", java.TypeModel{Name: "String"}, "/**\n * @responseMessage 200 ok\n * @responseMessage 404 not found\n */", anns(rs("GET"))),
		},
	}

	decls, err := parse(res, errorClass())
	require.NoError(t, err)

	decl := decls["/orders"]
	require.NotNil(t, decl)
	op := operationAt(decl, "/orders", "get")
	require.NotNil(t, op)
	require.Len(t, op.ResponseMessages, 2)
	assert.Equal(t, doclet.ResponseMessage{Code: 200, Message: "ok"}, op.ResponseMessages[0])
	assert.Equal(t, doclet.ResponseMessage{Code: 404, Message: "not found", ResponseModel: "ApiError"}, op.ResponseMessages[1])
	assert.Contains(t, decl.Models, "ApiError")

	t.Run("unknown", func(t *testing.T) {
		_, err := parse(res)
		assert.ErrorIs(t, err, doclet.ErrUnresolvableReference)
	})
}

func TestSortApisByPath(t *testing.T) {
	res := resource("com.example.Sorted", "/s",
		method("z", java.TypeModel{Name: "String"}, "", anns(rs("GET"), pathAnn("z"))),
		method("a", java.TypeModel{Name: "String"}, "", anns(rs("GET"), pathAnn("a"))),
	)

	decls, err := parse(res)
	require.NoError(t, err)
	decl := decls["/s"]
	require.Len(t, decl.Apis, 2)
	assert.Equal(t, "/s/a", decl.Apis[0].Path)
	assert.Equal(t, "/s/z", decl.Apis[1].Path)

	opts := doclet.DefaultOptions()
	opts.SortApisByPath = false
	decls, err = parseWith(opts, res)
	require.NoError(t, err)
	assert.Equal(t, "/s/z", decls["/s"].Apis[0].Path)
}
