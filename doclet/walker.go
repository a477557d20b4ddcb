package doclet

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/doclet/java"
)

var walkLog = commonlog.GetLogger("doclet.walker")

// ClassWalker adds the endpoints of one resource class, its superclasses and
// its sub-resources to a Declarations map.
type ClassWalker struct {
	p       *Parser
	class   *java.ClassModel
	classes *java.ClassSet
	parent  *Method
	// rootPath is the class path prefixed by the parent resource path.
	rootPath string
}

// NewClassWalker returns a walker for c. classes are the classes eligible as
// models and sub-resources below c. parent and parentPath are set when c is
// reached through a sub-resource locator.
func (p *Parser) NewClassWalker(c *java.ClassModel, classes *java.ClassSet, parent *Method, parentPath string) *ClassWalker {
	classPath := ""
	if a, ok := p.docs.classAnnotation(c, p.names.path); ok {
		classPath, _ = a.Value("value")
	}
	return &ClassWalker{
		p:        p,
		class:    c,
		classes:  classes,
		parent:   parent,
		rootPath: parentPath + classPath,
	}
}

// RootPath is the path template of the walked class.
func (w *ClassWalker) RootPath() string {
	return w.rootPath
}

// classLevel holds what the walker reads once per class of the hierarchy.
type classLevel struct {
	class            *java.ClassModel
	defaultErrorType string
	models           []Model
	resourcePath     string
	hasResourcePath  bool
	priority         string
	description      string
}

func (w *ClassWalker) Walk(decls Declarations) error {
	seen := make(map[string]bool)
	for current := w.class; current != nil && !seen[current.Name]; current = w.p.docs.superclass(current) {
		seen[current.Name] = true

		level, err := w.readLevel(current)
		if err != nil {
			return err
		}

		if w.parent == nil && w.p.subResources.Contains(current) {
			walkLog.Debugf("skipping sub-resource class %s outside of its locator", current.Name)
			continue
		}

		for _, m := range current.DeclaredMethods() {
			if err := w.walkMethod(decls, level, m); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *ClassWalker) readLevel(c *java.ClassModel) (*classLevel, error) {
	opts := w.p.opts
	level := &classLevel{class: c}

	if v, ok := w.p.docs.classTag(c, opts.DefaultErrorTypeTags); ok && strings.TrimSpace(v) != "" {
		name := strings.TrimSpace(opts.ReplaceVars(v))
		errClass := w.classes.Find(name)
		if errClass == nil {
			return nil, fmt.Errorf("class %s: default error type %s not found among the documented classes: %w",
				c.Name, name, ErrUnresolvableReference)
		}
		level.defaultErrorType = errClass.Name
		if opts.ParseModels && w.p.models != nil {
			models, _, err := w.p.models.ParseModels(errClass.Type(), ModelOptions{})
			if err != nil {
				return nil, fmt.Errorf("class %s: parse default error type %s: %w", c.Name, errClass.Name, err)
			}
			level.models = models
		}
	}

	if v, ok := w.p.docs.classTag(c, opts.ResourceTags); ok {
		level.resourcePath = opts.ReplaceVars(v)
		level.hasResourcePath = true
	}
	if v, ok := w.p.docs.classTag(c, opts.ResourcePriorityTags); ok {
		level.priority = strings.TrimSpace(v)
	}
	if v, ok := w.p.docs.classTag(c, opts.ResourceDescriptionTags); ok {
		level.description = v
	}
	return level, nil
}

func (w *ClassWalker) walkMethod(decls Declarations, level *classLevel, m *java.MethodModel) error {
	mc := MethodContext{
		Classes:               w.classes,
		ClassDefaultErrorType: level.defaultErrorType,
	}
	if w.parent != nil {
		mc.Parent = w.parent
	} else {
		mc.ParentPath = w.rootPath
	}
	mp := w.p.NewMethodParser(level.class, m, mc)
	method, err := mp.Parse()
	if err != nil {
		return err
	}
	if method == nil {
		return nil
	}

	resourcePath := w.resourcePath(level, mp)

	if method.IsSubResource() {
		target := w.classes.FindType(w.p.opts.unwrap(m.ReturnType))
		if target == nil {
			return nil
		}
		walkLog.Debugf("descending from %s.%s into sub-resource %s at %s", level.class.Name, m.Name, target.Name, resourcePath)
		sub := w.p.NewClassWalker(target, w.classes.Without(level.class), method, resourcePath)
		return sub.Walk(decls)
	}

	decl, ok := decls[resourcePath]
	if !ok {
		walkLog.Debugf("new declaration %s", resourcePath)
		decl = newDeclaration(resourcePath)
		decls[resourcePath] = decl
	}

	if err := w.setPriority(decl, level, mp); err != nil {
		return err
	}
	w.setDescription(decl, level, mp)
	w.addMethod(decl, mp, method)

	w.backfillConstructorParams(decl, level.class)
	w.backfillFieldParams(decl, level.class)
	w.backfillPlaceholders(decl)

	return w.addModels(decl, mp.describe(), method.Models, level.models)
}

// resourcePath picks the declaration a method belongs to: a resource tag on
// the method, else one on the class, else the class root path.
func (w *ClassWalker) resourcePath(level *classLevel, mp *MethodParser) string {
	path := w.rootPath
	if level.hasResourcePath {
		path = level.resourcePath
	}
	if v, ok := mp.tagValue(w.p.opts.ResourceTags); ok {
		path = resourceTagPath(v)
	}
	path = SanitizePath(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func (w *ClassWalker) setPriority(decl *Declaration, level *classLevel, mp *MethodParser) error {
	raw, ok := mp.levels.tagValue(w.p.opts.ResourcePriorityTags)
	if !ok {
		raw = level.priority
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	priority, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("method %s: resource priority %q is not an integer: %w", mp.describe(), raw, ErrConfigurationConflict)
	}
	if priority != PriorityUnset && decl.Priority == PriorityUnset {
		decl.Priority = priority
	}
	return nil
}

func (w *ClassWalker) setDescription(decl *Declaration, level *classLevel, mp *MethodParser) {
	description, ok := mp.levels.tagValue(w.p.opts.ResourceDescriptionTags)
	if !ok {
		description = level.description
	}
	if description != "" && decl.Description == "" {
		decl.Description = w.p.opts.ReplaceVars(description)
	}
}

// addMethod adds the operation of method to the api of its path unless an
// operation with the same verb, nickname and parameter count is there. Counts
// exclude the backfilled class path parameters.
func (w *ClassWalker) addMethod(decl *Declaration, mp *MethodParser, method *Method) {
	apiDescription, _ := mp.tagValue(w.p.opts.ApiDescriptionTags)

	api := decl.api(method.Path)
	if api == nil {
		api = &Api{Path: method.Path, Description: apiDescription}
		decl.Apis = append(decl.Apis, api)
	} else if api.Description == "" {
		api.Description = apiDescription
	}

	for _, op := range api.Operations {
		if op.Method == method.HTTPMethod && op.Nickname == method.Name && op.ownParams == len(method.Parameters) {
			walkLog.Debugf("dropping duplicate operation %s %s (%s)", method.HTTPMethod, method.Path, method.Name)
			return
		}
	}
	api.Operations = append(api.Operations, method.operation())
}

// appendToOperations adds param to every operation of decl that has no
// parameter of that name yet.
func appendToOperations(decl *Declaration, param ApiParameter) {
	for _, api := range decl.Apis {
		for _, op := range api.Operations {
			if !op.HasParameter(param.Name) {
				op.Parameters = append(op.Parameters, param)
			}
		}
	}
}

func (w *ClassWalker) backfillConstructorParams(decl *Declaration, c *java.ClassModel) {
	for _, ctor := range c.Constructors() {
		doc := w.p.docs.parse(ctor.Javadoc)
		for i := range ctor.Parameters {
			param := ctor.Parameters[i]
			if w.p.names.paramCategory(false, param.Annotations) != CategoryPath {
				continue
			}
			name := w.p.translator.ParameterTypeName(false, &param, w.p.opts.unwrap(param.Type))
			appendToOperations(decl, ApiParameter{
				ParamType:   CategoryPath,
				Name:        w.p.names.renderedName(param.Name, param.Annotations),
				Description: w.p.opts.ReplaceVars(doc.ParamText(param.Name)),
				Required:    boolPtr(true),
				Type:        name.Value,
				Format:      name.Format,
			})
		}
	}
}

func (w *ClassWalker) backfillFieldParams(decl *Declaration, c *java.ClassModel) {
	for _, f := range c.Fields {
		a, ok := java.FindAnnotation(f.Annotations, w.p.names.pathParam)
		if !ok {
			continue
		}
		rendered, ok := a.Value("value")
		if !ok || rendered == "" {
			continue
		}
		name := w.p.translator.ParameterTypeName(false, nil, f.Type)
		appendToOperations(decl, ApiParameter{
			ParamType:   CategoryPath,
			Name:        rendered,
			Description: w.p.opts.ReplaceVars(w.p.docs.parse(f.Javadoc).Body),
			Required:    boolPtr(true),
			Type:        name.Value,
			Format:      name.Format,
		})
	}
}

// backfillPlaceholders guarantees every {name} of the class path template a
// path parameter on every operation.
func (w *ClassWalker) backfillPlaceholders(decl *Declaration) {
	for _, name := range PathPlaceholders(w.rootPath) {
		appendToOperations(decl, ApiParameter{
			ParamType: CategoryPath,
			Name:      name,
			Required:  boolPtr(true),
			Type:      "string",
		})
	}
}

// addModels indexes the models of a method and of the class default error
// type by id into decl.
func (w *ClassWalker) addModels(decl *Declaration, method string, methodModels, classModels []Model) error {
	all := make([]Model, 0, len(methodModels)+len(classModels))
	all = append(all, methodModels...)
	all = append(all, classModels...)

	index := make(map[string]Model, len(all))
	for _, m := range all {
		if existing, ok := index[m.ID]; ok && !reflect.DeepEqual(existing, m) {
			return fmt.Errorf("method %s: two different models share the id %s among %s: %w",
				method, m.ID, modelIDs(all), ErrModelCollision)
		}
		if existing, ok := decl.Models[m.ID]; ok && !reflect.DeepEqual(existing, m) {
			return fmt.Errorf("method %s: model %s differs from the one already declared under %s: %w",
				method, m.ID, decl.ResourcePath, ErrModelCollision)
		}
		index[m.ID] = m
	}
	for id, m := range index {
		decl.Models[id] = m
	}
	return nil
}

func modelIDs(models []Model) string {
	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}
	return "[" + strings.Join(ids, ", ") + "]"
}
