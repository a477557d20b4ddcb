// Package translate maps Java types to Swagger 1.2 type names and formats.
package translate

import (
	"strings"

	"github.com/dhamidi/doclet/doclet"
	"github.com/dhamidi/doclet/java"
)

var rootNameAnnotations = []string{
	"javax.xml.bind.annotation.XmlRootElement",
	"jakarta.xml.bind.annotation.XmlRootElement",
	"com.fasterxml.jackson.annotation.JsonRootName",
}

var fileTypes = []string{
	"java.io.File",
	"java.io.InputStream",
	"org.glassfish.jersey.media.multipart.FormDataBodyPart",
	"org.glassfish.jersey.media.multipart.FormDataContentDisposition",
	"com.sun.jersey.multipart.FormDataBodyPart",
	"com.sun.jersey.core.header.FormDataContentDisposition",
}

// Translator names types after the classes it knows. Classes with a root
// element annotation take the annotated name.
type Translator struct {
	classes *java.ClassSet
}

func New(classes *java.ClassSet) *Translator {
	return &Translator{classes: classes}
}

func (t *Translator) TypeName(typ java.TypeModel, views []string) doclet.Name {
	switch {
	case typ.IsVoid():
		return doclet.Name{Value: "void"}
	case typ.IsArray():
		if typ.ArrayDepth == 1 && typ.Name == "byte" {
			return doclet.Name{Value: "string", Format: "byte"}
		}
		return doclet.Name{Value: "array"}
	case doclet.IsCollection(typ.Name):
		return doclet.Name{Value: "array"}
	case doclet.IsMap(typ.Name):
		return doclet.Name{Value: "object"}
	}
	if n, ok := doclet.PrimitiveTypeOf(typ.Name); ok {
		return n
	}
	if matchesAny(typ.Name, fileTypes) {
		return doclet.Name{Value: "File"}
	}

	c := t.classes.FindType(typ)
	if c != nil && c.IsEnum() {
		return doclet.Name{Value: "string"}
	}

	name := typ.SimpleName()
	if c != nil {
		name = rootName(c)
	}
	for _, arg := range typ.Arguments() {
		name += "-" + t.TypeName(arg, nil).Value
	}
	for _, view := range views {
		name += "-" + simpleName(view)
	}
	return doclet.Name{Value: name}
}

// ParameterTypeName names a parameter type. File uploads are only
// recognised when the operation consumes multipart data.
func (t *Translator) ParameterTypeName(multipart bool, param *java.ParameterModel, typ java.TypeModel) doclet.Name {
	if !matchesAny(typ.Name, fileTypes) {
		return t.TypeName(typ, nil)
	}
	if multipart {
		return doclet.Name{Value: "File"}
	}
	return doclet.Name{Value: "string", Format: "byte"}
}

func rootName(c *java.ClassModel) string {
	if a, ok := java.FindAnnotation(c.Annotations, rootNameAnnotations); ok {
		if v, ok := a.Value("value"); ok && v != "" {
			return v
		}
		if v, ok := a.Value("name"); ok && v != "" && v != "##default" {
			return v
		}
	}
	return simpleName(c.Name)
}

func simpleName(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".class")
	if i := strings.LastIndexAny(name, ".$"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func matchesAny(name string, qualified []string) bool {
	for _, q := range qualified {
		if name == q || (!strings.Contains(name, ".") && strings.HasSuffix(q, "."+name)) {
			return true
		}
	}
	return false
}
