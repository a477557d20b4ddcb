package doclet_test

import (
	"github.com/dhamidi/doclet/doclet"
	"github.com/dhamidi/doclet/doclet/modelparse"
	"github.com/dhamidi/doclet/doclet/translate"
	"github.com/dhamidi/doclet/java"
)

// ann builds an annotation from alternating element names and values.
func ann(typ string, kv ...string) java.AnnotationModel {
	a := java.AnnotationModel{Type: typ}
	if len(kv) > 0 {
		a.Values = make(map[string]any)
		for i := 0; i+1 < len(kv); i += 2 {
			a.Values[kv[i]] = kv[i+1]
		}
	}
	return a
}

func rs(simple string, kv ...string) java.AnnotationModel {
	return ann("javax.ws.rs."+simple, kv...)
}

func pathAnn(p string) java.AnnotationModel { return rs("Path", "value", p) }

func typ(name string, args ...string) java.TypeModel {
	var targs []java.TypeModel
	for _, a := range args {
		targs = append(targs, java.TypeModel{Name: a})
	}
	return java.NewType(name, targs...)
}

func param(name, typeName string, anns ...java.AnnotationModel) java.ParameterModel {
	return java.ParameterModel{Name: name, Type: java.TypeModel{Name: typeName}, Annotations: anns}
}

func method(name string, ret java.TypeModel, javadoc string, anns []java.AnnotationModel, params ...java.ParameterModel) java.MethodModel {
	return java.MethodModel{
		Name:        name,
		ReturnType:  ret,
		Javadoc:     javadoc,
		Annotations: anns,
		Parameters:  params,
		Visibility:  java.VisibilityPublic,
	}
}

func anns(a ...java.AnnotationModel) []java.AnnotationModel { return a }

func itemClass() *java.ClassModel {
	return &java.ClassModel{
		Name: "com.example.Item",
		Fields: []java.FieldModel{
			{Name: "id", Type: java.TypeModel{Name: "long"}},
			{Name: "name", Type: java.TypeModel{Name: "String"}},
		},
	}
}

func errorClass() *java.ClassModel {
	return &java.ClassModel{
		Name: "com.example.ApiError",
		Fields: []java.FieldModel{
			{Name: "message", Type: java.TypeModel{Name: "String"}},
		},
	}
}

func colorClass() *java.ClassModel {
	return &java.ClassModel{
		Name:          "com.example.Color",
		Kind:          java.ClassKindEnum,
		EnumConstants: []java.EnumConstantModel{{Name: "RED"}, {Name: "GREEN"}},
	}
}

// resource builds a resource class at path with the given methods.
func resource(name, path string, methods ...java.MethodModel) *java.ClassModel {
	c := &java.ClassModel{Name: name, Methods: methods}
	if path != "" {
		c.Annotations = anns(pathAnn(path))
	}
	return c
}

func parseWith(opts *doclet.Options, classes ...*java.ClassModel) (doclet.Declarations, error) {
	if opts == nil {
		opts = doclet.DefaultOptions()
	}
	set := java.NewClassSet(classes...)
	tr := translate.New(set)
	return doclet.Parse(doclet.Config{
		Options:    opts,
		Translator: tr,
		Models:     modelparse.New(opts, tr, set),
		Classes:    classes,
	})
}

func parse(classes ...*java.ClassModel) (doclet.Declarations, error) {
	return parseWith(nil, classes...)
}

// operationAt finds the operation named nickname on the api at path.
func operationAt(decl *doclet.Declaration, path, nickname string) *doclet.Operation {
	for _, api := range decl.Apis {
		if api.Path != path {
			continue
		}
		for _, op := range api.Operations {
			if op.Nickname == nickname {
				return op
			}
		}
	}
	return nil
}

func parameterNamed(op *doclet.Operation, name string) (doclet.ApiParameter, int) {
	var found doclet.ApiParameter
	count := 0
	for _, p := range op.Parameters {
		if p.Name == name {
			found = p
			count++
		}
	}
	return found, count
}

func newTranslator(classes []*java.ClassModel) doclet.Translator {
	return translate.New(java.NewClassSet(classes...))
}
