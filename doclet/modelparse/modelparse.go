// Package modelparse builds models from the fields of documented classes.
package modelparse

import (
	"strings"

	"github.com/dhamidi/doclet/doclet"
	"github.com/dhamidi/doclet/java"
	"github.com/dhamidi/doclet/java/javadoc"
)

var (
	ignoreAnnotations = []string{
		"com.fasterxml.jackson.annotation.JsonIgnore",
		"org.codehaus.jackson.annotate.JsonIgnore",
		"javax.xml.bind.annotation.XmlTransient",
		"jakarta.xml.bind.annotation.XmlTransient",
	}
	propertyNameAnnotations = []string{
		"com.fasterxml.jackson.annotation.JsonProperty",
		"org.codehaus.jackson.annotate.JsonProperty",
	}
	xmlNameAnnotations = []string{
		"javax.xml.bind.annotation.XmlElement",
		"jakarta.xml.bind.annotation.XmlElement",
		"javax.xml.bind.annotation.XmlAttribute",
		"jakarta.xml.bind.annotation.XmlAttribute",
	}
)

const (
	requiredTag = "required"
	optionalTag = "optional"
)

// Parser is a doclet.ModelParser over class fields.
type Parser struct {
	opts       *doclet.Options
	translator doclet.Translator
	classes    *java.ClassSet
	bindings   []binding
}

type binding struct {
	category string
	names    []string
}

func New(opts *doclet.Options, translator doclet.Translator, classes *java.ClassSet) *Parser {
	if opts == nil {
		opts = doclet.DefaultOptions()
	}
	return &Parser{
		opts:       opts,
		translator: translator,
		classes:    classes,
		bindings: []binding{
			{doclet.CategoryPath, opts.JaxRs("PathParam")},
			{doclet.CategoryQuery, opts.JaxRs("QueryParam")},
			{doclet.CategoryHeader, opts.JaxRs("HeaderParam")},
			{doclet.CategoryForm, append(opts.JaxRs("FormParam"), opts.FormDataParamAnnotations...)},
		},
	}
}

// ParseModels returns the models reachable from t. Containers and maps
// yield the models of their element types and no root id.
func (p *Parser) ParseModels(t java.TypeModel, mo doclet.ModelOptions) ([]doclet.Model, string, error) {
	g := &generator{
		p:       p,
		opts:    mo,
		visited: make(map[string]bool),
	}
	rootID := g.generateType(t, mo.VarsToTypes, mo.Composite)
	return g.models, rootID, nil
}

// generator holds the state of one ParseModels call.
type generator struct {
	p       *Parser
	opts    doclet.ModelOptions
	visited map[string]bool
	models  []doclet.Model
}

// generateType adds the model of t and of its field types, returning the id
// of the model of t or "" when t is not model shaped.
func (g *generator) generateType(t java.TypeModel, vars map[string]java.TypeModel, composite bool) string {
	t = bind(t, vars)

	if elem, ok := doclet.ContainerElement(t); ok {
		g.generateType(elem, nil, false)
		return ""
	}
	if doclet.IsMap(t.Name) {
		if args := t.Arguments(); len(args) == 2 {
			g.generateType(args[1], nil, false)
		}
		return ""
	}
	if t.IsArray() || t.IsVoid() {
		return ""
	}
	if _, ok := doclet.PrimitiveTypeOf(t.Name); ok {
		return ""
	}
	c := g.p.classes.FindType(t)
	if c == nil || c.IsEnum() {
		return ""
	}

	id := g.p.translator.TypeName(t, g.opts.Views).Value
	if g.visited[id] {
		return id
	}
	g.visited[id] = true

	model := doclet.Model{ID: id}
	if doc := javadoc.Parse(c.Javadoc); doc.Body != "" {
		model.Description = g.p.opts.ReplaceVars(doc.FirstSentence())
	}
	for _, level := range g.hierarchy(c) {
		classVars := typeBindings(level, t, vars)
		for i := range level.Fields {
			g.addField(&model, &level.Fields[i], classVars, composite)
		}
	}
	g.models = append(g.models, model)
	return id
}

// hierarchy returns c preceded by its known superclasses, root first.
func (g *generator) hierarchy(c *java.ClassModel) []*java.ClassModel {
	var chain []*java.ClassModel
	seen := make(map[string]bool)
	for current := c; current != nil && !seen[current.Name]; current = g.p.classes.Find(current.SuperClass) {
		seen[current.Name] = true
		chain = append([]*java.ClassModel{current}, chain...)
	}
	return chain
}

func (g *generator) addField(model *doclet.Model, f *java.FieldModel, vars map[string]java.TypeModel, composite bool) {
	if f.IsStatic || f.IsTransient || java.HasAnnotation(f.Annotations, ignoreAnnotations) {
		return
	}
	if !g.inViews(f) {
		return
	}

	prop := doclet.Property{Name: propertyName(f), RawFieldName: f.Name}
	if composite {
		category, name, ok := g.bindingOf(f)
		if !ok {
			return
		}
		prop.ParamCategory = category
		prop.Name = name
	}
	if _, dup := model.Property(prop.Name); dup {
		return
	}

	ft := bind(f.Type, vars)
	g.describeType(&prop, ft, !composite)

	doc := javadoc.Parse(f.Javadoc)
	prop.Description = g.p.opts.ReplaceVars(doc.Body)

	if isNumeric(prop.Type) {
		if a, ok := java.FindAnnotation(f.Annotations, g.p.opts.ParamMinValueAnnotations); ok {
			prop.Minimum, _ = a.Value("value")
		}
		if a, ok := java.FindAnnotation(f.Annotations, g.p.opts.ParamMaxValueAnnotations); ok {
			prop.Maximum, _ = a.Value("value")
		}
	}
	if composite {
		if a, ok := java.FindAnnotation(f.Annotations, g.p.opts.JaxRs("DefaultValue")); ok {
			prop.DefaultValue, _ = a.Value("value")
		}
	}

	switch {
	case java.HasAnnotation(f.Annotations, g.p.opts.RequiredParamAnnotations), doc.HasTag(requiredTag):
		model.Required = append(model.Required, prop.Name)
	case java.HasAnnotation(f.Annotations, g.p.opts.OptionalParamAnnotations), doc.HasTag(optionalTag):
		model.Optional = append(model.Optional, prop.Name)
	}
	model.Properties = append(model.Properties, prop)
}

// describeType fills the type of prop. Nested models are generated only
// when recurse is set.
func (g *generator) describeType(prop *doclet.Property, t java.TypeModel, recurse bool) {
	if elem, ok := doclet.ContainerElement(t); ok {
		prop.Type = "array"
		if doclet.IsSet(t.Name) {
			prop.UniqueItems = boolPtr(true)
		}
		if n, ok := doclet.PrimitiveTypeOf(elem.Name); ok && !elem.IsArray() {
			prop.Items = &doclet.Items{Type: n.Value, Format: n.Format}
			return
		}
		if c := g.p.classes.FindType(elem); c != nil && c.IsEnum() {
			prop.Items = &doclet.Items{Type: "string"}
			return
		}
		ref := g.p.translator.TypeName(elem, g.opts.Views).Value
		if recurse {
			if id := g.generateType(elem, nil, false); id != "" {
				ref = id
			}
		}
		prop.Items = &doclet.Items{Ref: ref}
		return
	}

	if c := g.p.classes.FindType(t); c != nil && c.IsEnum() && !t.IsArray() {
		prop.Type = "string"
		prop.Enum = c.EnumNames()
		return
	}

	name := g.p.translator.TypeName(t, g.opts.Views)
	if recurse {
		if id := g.generateType(t, nil, false); id != "" {
			prop.Ref = id
			return
		}
	} else if c := g.p.classes.FindType(t); c != nil {
		prop.Ref = name.Value
		return
	}
	prop.Type = name.Value
	prop.Format = name.Format
}

func (g *generator) inViews(f *java.FieldModel) bool {
	if len(g.opts.Views) == 0 {
		return true
	}
	a, ok := java.FindAnnotation(f.Annotations, g.p.opts.JsonViewAnnotations)
	if !ok {
		return true
	}
	for _, fieldView := range a.ValueList("value") {
		fieldView = strings.TrimSuffix(fieldView, ".class")
		for _, view := range g.opts.Views {
			if sameClass(fieldView, view) {
				return true
			}
		}
	}
	return false
}

func (g *generator) bindingOf(f *java.FieldModel) (string, string, bool) {
	for _, b := range g.p.bindings {
		if a, ok := java.FindAnnotation(f.Annotations, b.names); ok {
			name, _ := a.Value("value")
			if name == "" {
				name = f.Name
			}
			return b.category, name, true
		}
	}
	if g.opts.ConsumesMultipart && len(f.Annotations) == 0 {
		return doclet.CategoryForm, f.Name, true
	}
	return "", "", false
}

func propertyName(f *java.FieldModel) string {
	if a, ok := java.FindAnnotation(f.Annotations, propertyNameAnnotations); ok {
		if v, ok := a.Value("value"); ok && v != "" {
			return v
		}
	}
	if a, ok := java.FindAnnotation(f.Annotations, xmlNameAnnotations); ok {
		if v, ok := a.Value("name"); ok && v != "" && v != "##default" {
			return v
		}
	}
	return f.Name
}

// typeBindings maps the type variables of c. Variables of the parsed class
// come from the type arguments of t, falling back to vars.
func typeBindings(c *java.ClassModel, t java.TypeModel, vars map[string]java.TypeModel) map[string]java.TypeModel {
	result := make(map[string]java.TypeModel, len(vars))
	for k, v := range vars {
		result[k] = v
	}
	if c.Name != t.Name {
		return result
	}
	args := t.Arguments()
	for i, tp := range c.TypeParameters {
		if i < len(args) {
			result[tp.Name] = args[i]
		}
	}
	return result
}

// bind substitutes bound type variables in t.
func bind(t java.TypeModel, vars map[string]java.TypeModel) java.TypeModel {
	if len(vars) == 0 {
		return t
	}
	if v, ok := vars[t.Name]; ok && len(t.TypeArguments) == 0 {
		v.ArrayDepth += t.ArrayDepth
		return v
	}
	if len(t.TypeArguments) == 0 {
		return t
	}
	bound := t
	bound.TypeArguments = make([]java.TypeArgumentModel, len(t.TypeArguments))
	for i, ta := range t.TypeArguments {
		if ta.Type != nil {
			arg := bind(*ta.Type, vars)
			ta.Type = &arg
		}
		if ta.Bound != nil {
			b := bind(*ta.Bound, vars)
			ta.Bound = &b
		}
		bound.TypeArguments[i] = ta
	}
	return bound
}

func sameClass(a, b string) bool {
	if a == b {
		return true
	}
	return simple(a) == simple(b) && (!strings.Contains(a, ".") || !strings.Contains(b, "."))
}

func simple(name string) string {
	if i := strings.LastIndexAny(name, ".$"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func isNumeric(typeName string) bool {
	return typeName == "integer" || typeName == "number"
}

func boolPtr(b bool) *bool {
	return &b
}
