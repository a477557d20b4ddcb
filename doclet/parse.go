// Package doclet resolves JAX-RS resource classes, described by their class
// models and javadoc, into Swagger 1.2 style API declarations.
//
// Resolution is a single threaded depth first walk. Each resource class is
// visited with its superclasses; sub-resource locators recurse into the
// returned class with that class removed from the set of classes eligible
// further down, which bounds the recursion. The first fatal error aborts the
// run.
package doclet

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/doclet/java"
)

var log = commonlog.GetLogger("doclet")

// Config holds the collaborators and inputs of a parse run.
type Config struct {
	Options    *Options
	Translator Translator
	Models     ModelParser
	// Classes are the documented classes: resources and the models they
	// reference.
	Classes []*java.ClassModel
	// TypeClasses are extra classes usable as generic arguments of a custom
	// response type.
	TypeClasses []*java.ClassModel
}

// Parser resolves the resource classes of one run. It is not safe for
// concurrent use.
type Parser struct {
	opts         *Options
	translator   Translator
	models       ModelParser
	names        annotationNames
	classes      *java.ClassSet
	typeClasses  *java.ClassSet
	allClasses   *java.ClassSet
	docs         *docSource
	subResources *java.ClassSet
}

func New(cfg Config) *Parser {
	opts := cfg.Options
	if opts == nil {
		opts = DefaultOptions()
	}
	p := &Parser{
		opts:        opts,
		translator:  cfg.Translator,
		models:      cfg.Models,
		names:       newAnnotationNames(opts),
		classes:     java.NewClassSet(cfg.Classes...),
		typeClasses: java.NewClassSet(cfg.TypeClasses...),
	}
	p.allClasses = p.classes.Union(p.typeClasses)
	p.docs = newDocSource(p.allClasses)
	p.subResources = p.findSubResources()
	return p
}

// Parse resolves every resource class of cfg.
func Parse(cfg Config) (Declarations, error) {
	return New(cfg).Parse()
}

// Parse walks every concrete class and returns the declarations keyed by
// resource path.
func (p *Parser) Parse() (Declarations, error) {
	decls := make(Declarations)
	for _, c := range p.classes.All() {
		if !isResourceCandidate(c) {
			continue
		}
		if err := p.NewClassWalker(c, p.classes, nil, "").Walk(decls); err != nil {
			return nil, err
		}
	}
	if p.opts.SortApisByPath {
		for _, decl := range decls {
			decl.sortApis()
		}
	}
	log.Infof("resolved %d resource declarations from %d classes", len(decls), p.classes.Len())
	return decls, nil
}

// Classes returns the documented classes of the run.
func (p *Parser) Classes() *java.ClassSet {
	return p.classes
}

func isResourceCandidate(c *java.ClassModel) bool {
	switch c.Kind {
	case java.ClassKindInterface, java.ClassKindEnum, java.ClassKindAnnotation:
		return false
	}
	return !c.IsAbstract
}

// findSubResources registers the classes returned by sub-resource locators:
// methods with a path but no HTTP verb.
func (p *Parser) findSubResources() *java.ClassSet {
	var found []*java.ClassModel
	for _, c := range p.classes.All() {
		for _, m := range c.DeclaredMethods() {
			ls := p.docs.methodLevels(c, m)
			if p.names.httpMethod(ls) != "" {
				continue
			}
			if _, ok := ls.annotation(p.names.path); !ok {
				continue
			}
			if target := p.classes.FindType(p.opts.unwrap(m.ReturnType)); target != nil {
				log.Debugf("%s is a sub-resource of %s.%s", target.Name, c.Name, m.Name)
				found = append(found, target)
			}
		}
	}
	return java.NewClassSet(found...)
}

var httpMethods = []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS", "PATCH"}

type verbAnnotation struct {
	method string
	names  []string
}

// annotationNames are the qualified annotation names derived from Options.
type annotationNames struct {
	path         []string
	verbs        []verbAnnotation
	pathParam    []string
	queryParam   []string
	headerParam  []string
	formParam    []string
	beanParam    []string
	defaultValue []string
	consumes     []string
	produces     []string
	// binding are the annotations that make a parameter a request parameter.
	binding []string
	// paramName are the bindings whose value is the rendered parameter name.
	paramName []string
}

func newAnnotationNames(o *Options) annotationNames {
	n := annotationNames{
		path:         o.JaxRs("Path"),
		pathParam:    o.JaxRs("PathParam"),
		queryParam:   o.JaxRs("QueryParam"),
		headerParam:  o.JaxRs("HeaderParam"),
		formParam:    append(o.JaxRs("FormParam"), o.FormDataParamAnnotations...),
		beanParam:    o.JaxRs("BeanParam"),
		defaultValue: o.JaxRs("DefaultValue"),
		consumes:     o.JaxRs("Consumes"),
		produces:     o.JaxRs("Produces"),
	}
	for _, verb := range httpMethods {
		n.verbs = append(n.verbs, verbAnnotation{method: verb, names: o.JaxRs(verb)})
	}
	n.paramName = concat(n.pathParam, n.queryParam, n.headerParam, n.formParam)
	n.binding = concat(n.paramName, n.beanParam, n.defaultValue, o.JaxRs("MatrixParam", "Encoded"))
	return n
}

func concat(lists ...[]string) []string {
	var result []string
	for _, l := range lists {
		result = append(result, l...)
	}
	return result
}

// httpMethod returns the verb of the first level carrying a verb
// annotation, or "".
func (n *annotationNames) httpMethod(ls levels) string {
	for _, l := range ls {
		for _, v := range n.verbs {
			if java.HasAnnotation(l.method.Annotations, v.names) {
				return v.method
			}
		}
	}
	return ""
}

// paramCategory classifies a parameter by its binding annotation.
func (n *annotationNames) paramCategory(multipart bool, anns []java.AnnotationModel) string {
	switch {
	case java.HasAnnotation(anns, n.pathParam):
		return CategoryPath
	case java.HasAnnotation(anns, n.queryParam):
		return CategoryQuery
	case java.HasAnnotation(anns, n.headerParam):
		return CategoryHeader
	case java.HasAnnotation(anns, n.formParam):
		return CategoryForm
	case java.HasAnnotation(anns, n.beanParam):
		return CategoryComposite
	case multipart:
		return CategoryForm
	}
	return CategoryBody
}

// renderedName returns the name a binding annotation gives a parameter.
func (n *annotationNames) renderedName(name string, anns []java.AnnotationModel) string {
	if a, ok := java.FindAnnotation(anns, n.paramName); ok {
		if v, ok := a.Value("value"); ok && v != "" {
			return v
		}
	}
	return name
}
