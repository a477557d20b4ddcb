package doclet

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dhamidi/doclet/java"
)

var (
	genericResponsePattern = regexp.MustCompile(`(.*)<(.*)>`)
	responseMessagePattern = regexp.MustCompile("(\\d+)([^`]+)(`.*)?")
)

// MethodContext is the state a method is resolved in besides the method
// itself.
type MethodContext struct {
	// ParentPath prefixes the method path. Ignored when Parent is set.
	ParentPath string
	// Parent is the sub-resource locator through which the method is
	// reached. Its path prefixes the method path and its parameters are
	// appended to the method's.
	Parent *Method
	// Classes are the classes models and type overrides are looked up in.
	Classes *java.ClassSet
	// ClassDefaultErrorType is the response model of error responses that
	// name none, unless the method has its own default.
	ClassDefaultErrorType string
}

// MethodParser resolves one resource method.
type MethodParser struct {
	p          *Parser
	class      *java.ClassModel
	method     *java.MethodModel
	levels     levels
	ctx        MethodContext
	httpMethod string
	models     modelSet
}

func (p *Parser) NewMethodParser(c *java.ClassModel, m *java.MethodModel, ctx MethodContext) *MethodParser {
	if ctx.Classes == nil {
		ctx.Classes = p.classes
	}
	ls := p.docs.methodLevels(c, m)
	return &MethodParser{
		p:          p,
		class:      c,
		method:     m,
		levels:     ls,
		ctx:        ctx,
		httpMethod: p.names.httpMethod(ls),
	}
}

// Parse resolves the method. It returns nil and no error when the method is
// not an endpoint or is excluded.
func (mp *MethodParser) Parse() (*Method, error) {
	opts := mp.p.opts

	methodPath := mp.methodPath()
	if mp.httpMethod == "" && methodPath == "" {
		return nil, nil
	}

	deprecated := false
	if mp.isDeprecated() {
		if opts.ExcludeDeprecatedOperations {
			return nil, nil
		}
		deprecated = true
	}

	if mp.levels.hasTag(opts.ExcludeOperationTags) {
		return nil, nil
	}

	parentPath := mp.ctx.ParentPath
	if mp.ctx.Parent != nil {
		parentPath = mp.ctx.Parent.Path
	}

	params, err := mp.parameters()
	if err != nil {
		return nil, err
	}
	responses, err := mp.responseMessages()
	if err != nil {
		return nil, err
	}
	returnType, items, err := mp.returnType()
	if err != nil {
		return nil, err
	}
	auth, err := mp.authorizations()
	if err != nil {
		return nil, err
	}
	summary, notes := mp.summaryAndNotes()

	return &Method{
		HTTPMethod:       mp.httpMethod,
		Name:             mp.method.Name,
		Path:             SanitizePath(joinPath(parentPath, methodPath)),
		Parameters:       params,
		ResponseMessages: responses,
		Summary:          summary,
		Notes:            notes,
		ReturnType:       returnType,
		ReturnItems:      items,
		Consumes:         mp.mediaTypes(mp.p.names.consumes),
		Produces:         mp.mediaTypes(mp.p.names.produces),
		Authorizations:   auth,
		Deprecated:       deprecated,
		Models:           mp.models.models,
	}, nil
}

func (mp *MethodParser) tagValue(names []string) (string, bool) {
	v, ok := mp.levels.tagValue(names)
	if !ok {
		return "", false
	}
	return mp.p.opts.ReplaceVars(v), true
}

func (mp *MethodParser) tagValues(names []string) []string {
	values := mp.levels.tagValues(names)
	for i := range values {
		values[i] = mp.p.opts.ReplaceVars(values[i])
	}
	return values
}

func (mp *MethodParser) methodPath() string {
	if a, ok := mp.levels.annotation(mp.p.names.path); ok {
		v, _ := a.Value("value")
		return v
	}
	return ""
}

func (mp *MethodParser) isDeprecated() bool {
	if mp.method.IsDeprecated {
		return true
	}
	if _, ok := mp.levels.annotation(mp.p.opts.DeprecatedAnnotations); ok {
		return true
	}
	return mp.levels.hasTag(mp.p.opts.DeprecatedTags)
}

func (mp *MethodParser) describe() string {
	return mp.class.Name + "." + mp.method.Name
}

// parseModels adds the models of t to the method's model set.
func (mp *MethodParser) parseModels(t java.TypeModel, mo ModelOptions) error {
	if !mp.p.opts.ParseModels || mp.p.models == nil {
		return nil
	}
	models, _, err := mp.p.models.ParseModels(t, mo)
	if err != nil {
		return fmt.Errorf("method %s: parse models of %s: %w", mp.describe(), t, err)
	}
	mp.models.add(models...)
	return nil
}

// paramLookups are the per-parameter values read from the method's tags and
// parameter annotations, keyed by raw parameter name.
type paramLookups struct {
	required map[string]bool
	optional map[string]bool
	excluded []string
	csv      []string
	minimum  map[string]string
	maximum  map[string]string
	defaults map[string]string
	renames  map[string]string
}

func (mp *MethodParser) parameters() ([]ApiParameter, error) {
	opts := mp.p.opts
	multipart := contains(mp.mediaTypes(mp.p.names.consumes), multipartFormData)

	params := make([]java.ParameterModel, len(mp.method.Parameters))
	composites := make([]*Model, len(params))
	names := make(map[string]bool)
	for i := range params {
		params[i] = mp.levels.param(i)
		names[params[i].Name] = true
		if mp.p.names.paramCategory(multipart, params[i].Annotations) != CategoryComposite {
			continue
		}
		root, err := mp.compositeRoot(params[i].Type, multipart)
		if err != nil {
			return nil, err
		}
		composites[i] = root
		if root != nil {
			for _, prop := range root.Properties {
				names[prop.RawFieldName] = true
			}
		}
	}

	lk := paramLookups{
		required: mp.matchingParams(names, opts.RequiredParamsTags, opts.RequiredParamAnnotations, params),
		optional: mp.matchingParams(names, opts.OptionalParamsTags, opts.OptionalParamAnnotations, params),
		excluded: mp.listedParams(names, opts.ExcludeParamsTags),
		csv:      mp.listedParams(names, opts.CsvParamsTags),
		minimum:  mp.paramValues(names, opts.ParamsMinValueTags, opts.ParamMinValueAnnotations, params, "value", "min"),
		maximum:  mp.paramValues(names, opts.ParamsMaxValueTags, opts.ParamMaxValueAnnotations, params, "value", "max"),
		defaults: mp.namedValues(names, opts.ParamsDefaultValueTags),
		renames:  mp.namedValues(names, opts.ParamsNameTags),
	}

	var result []ApiParameter
	for i, param := range params {
		if !mp.includeParameter(param, lk.excluded) {
			continue
		}
		category := mp.p.names.paramCategory(multipart, param.Annotations)
		if category == CategoryComposite {
			if composites[i] != nil {
				result = append(result, expandComposite(composites[i], &lk)...)
			}
			continue
		}
		ap, err := mp.parameter(i, param, category, multipart, &lk)
		if err != nil {
			return nil, err
		}
		result = append(result, ap)
	}

	if mp.ctx.Parent != nil {
		for _, inherited := range mp.ctx.Parent.Parameters {
			if !hasParameter(result, inherited.ParamType, inherited.Name) {
				result = append(result, inherited)
			}
		}
	}
	return result, nil
}

func hasParameter(params []ApiParameter, category, name string) bool {
	for _, p := range params {
		if p.ParamType == category && p.Name == name {
			return true
		}
	}
	return false
}

func (mp *MethodParser) compositeRoot(t java.TypeModel, multipart bool) (*Model, error) {
	if mp.p.models == nil {
		return nil, nil
	}
	models, rootID, err := mp.p.models.ParseModels(mp.p.opts.unwrap(t), ModelOptions{ConsumesMultipart: multipart, Composite: true})
	if err != nil {
		return nil, fmt.Errorf("method %s: expand bean parameter %s: %w", mp.describe(), t, err)
	}
	for i := range models {
		if models[i].ID == rootID {
			return &models[i], nil
		}
	}
	return nil, nil
}

func expandComposite(root *Model, lk *paramLookups) []ApiParameter {
	result := make([]ApiParameter, 0, len(root.Properties))
	for _, prop := range root.Properties {
		var required *bool
		switch {
		case lk.required[prop.RawFieldName]:
			required = boolPtr(true)
		case lk.optional[prop.RawFieldName]:
			required = boolPtr(false)
		case contains(root.Required, prop.Name):
			required = boolPtr(true)
		case contains(root.Optional, prop.Name):
			required = boolPtr(false)
		default:
			required = requiredness(prop.ParamCategory, prop.RawFieldName, prop.Type, lk)
		}
		result = append(result, ApiParameter{
			ParamType:     prop.ParamCategory,
			Name:          prop.Name,
			Description:   prop.Description,
			Required:      required,
			AllowMultiple: allowMultiple(prop.ParamCategory, prop.RawFieldName, lk.csv),
			Type:          prop.Type,
			Format:        prop.Format,
			Items:         prop.Items,
			UniqueItems:   prop.UniqueItems,
			Enum:          prop.Enum,
			Minimum:       prop.Minimum,
			Maximum:       prop.Maximum,
			DefaultValue:  prop.DefaultValue,
		})
	}
	return result
}

func (mp *MethodParser) parameter(i int, param java.ParameterModel, category string, multipart bool, lk *paramLookups) (ApiParameter, error) {
	opts := mp.p.opts
	tr := mp.p.translator

	paramType := opts.unwrap(param.Type)
	if category == CategoryBody {
		if custom, ok := mp.tagValue(opts.InputTypeTags); ok {
			if c := mp.ctx.Classes.Find(strings.TrimSpace(custom)); c != nil {
				paramType = c.Type()
				if err := mp.parseModels(paramType, ModelOptions{}); err != nil {
					return ApiParameter{}, err
				}
			}
		}
	}

	name := tr.ParameterTypeName(multipart, &param, paramType)
	ap := ApiParameter{ParamType: category, Type: name.Value, Format: name.Format}

	if name.Value == "File" {
		ap.ParamType = CategoryForm
	} else {
		elem, isContainer := ContainerElement(paramType)
		modelType := paramType
		if isContainer {
			modelType = elem
		}
		if err := mp.parseModels(modelType, ModelOptions{}); err != nil {
			return ApiParameter{}, err
		}

		if c := mp.p.allClasses.FindType(paramType); c != nil && c.IsEnum() && !paramType.IsArray() {
			ap.Enum = c.EnumNames()
			ap.Type = "string"
		}

		ap.AllowMultiple = allowMultiple(category, param.Name, lk.csv)

		if isNumericType(ap.Type) {
			ap.Minimum = lk.minimum[param.Name]
			ap.Maximum = lk.maximum[param.Name]
		}

		context := fmt.Sprintf("method %s parameter %s", mp.describe(), param.Name)
		if err := verifyNumericValue(context+" minimum", ap.Type, ap.Format, ap.Minimum); err != nil {
			return ApiParameter{}, err
		}
		if err := verifyNumericValue(context+" maximum", ap.Type, ap.Format, ap.Maximum); err != nil {
			return ApiParameter{}, err
		}

		def := ""
		if a, ok := java.FindAnnotation(param.Annotations, mp.p.names.defaultValue); ok {
			def, _ = a.Value("value")
		}
		if def == "" {
			def = lk.defaults[param.Name]
		}
		if def != "" {
			if err := checkDefault(context, &ap, def); err != nil {
				return ApiParameter{}, err
			}
			if strings.EqualFold(ap.Type, "boolean") {
				def = strings.ToLower(def)
			}
		}
		if ap.Enum != nil && def != "" && !contains(ap.Enum, def) {
			return ApiParameter{}, fmt.Errorf("%s: default value %q is not one of %v: %w", context, def, ap.Enum, ErrConstraintViolation)
		}
		ap.DefaultValue = def

		if isContainer {
			n := tr.TypeName(elem, nil)
			if isPrimitiveType(elem) {
				ap.Items = &Items{Type: n.Value, Format: n.Format}
			} else {
				ap.Items = &Items{Ref: n.Value}
			}
		}
		if ap.Type == "array" && IsSet(paramType.Name) {
			ap.UniqueItems = boolPtr(true)
		}
	}

	ap.Required = requiredness(ap.ParamType, param.Name, ap.Type, lk)
	if rename, ok := lk.renames[param.Name]; ok {
		ap.Name = rename
	} else {
		ap.Name = mp.p.names.renderedName(param.Name, param.Annotations)
	}
	ap.Description = opts.ReplaceVars(mp.levels.paramText(i))
	return ap, nil
}

// checkDefault validates a default value against the type and bounds of ap.
func checkDefault(context string, ap *ApiParameter, def string) error {
	if ap.Minimum == "" && ap.Maximum == "" {
		return verifyValue(context+" default value", ap.Type, ap.Format, def)
	}
	if ap.Minimum != "" {
		cmp, err := compareNumericValues(context+" default value", ap.Type, ap.Format, def, ap.Minimum)
		if err != nil {
			return err
		}
		if cmp < 0 {
			return fmt.Errorf("%s: default value %s is below the minimum %s: %w", context, def, ap.Minimum, ErrConstraintViolation)
		}
	}
	if ap.Maximum != "" {
		cmp, err := compareNumericValues(context+" default value", ap.Type, ap.Format, def, ap.Maximum)
		if err != nil {
			return err
		}
		if cmp > 0 {
			return fmt.Errorf("%s: default value %s is above the maximum %s: %w", context, def, ap.Maximum, ErrConstraintViolation)
		}
	}
	return nil
}

func requiredness(category, name, typeName string, lk *paramLookups) *bool {
	switch {
	case category == CategoryPath:
		return boolPtr(true)
	case lk.required[name]:
		return boolPtr(true)
	case lk.optional[name]:
		return nil
	case category == CategoryBody, typeName == "File" && category == CategoryForm:
		return boolPtr(true)
	}
	return nil
}

func allowMultiple(category, name string, csv []string) *bool {
	switch category {
	case CategoryQuery, CategoryPath, CategoryHeader:
		if contains(csv, name) {
			return boolPtr(true)
		}
	}
	return nil
}

// includeParameter filters out parameters that are not request inputs.
// Parameters with foreign annotations only are kept for verbs with a body.
func (mp *MethodParser) includeParameter(param java.ParameterModel, excluded []string) bool {
	opts := mp.p.opts
	if java.HasAnnotation(param.Annotations, opts.ExcludeParamAnnotations) {
		return false
	}
	if contains(excluded, param.Name) {
		return false
	}
	if opts.ExcludeDeprecatedParams && java.HasAnnotation(param.Annotations, opts.DeprecatedAnnotations) {
		return false
	}
	if java.HasAnnotation(param.Annotations, mp.p.names.binding) {
		return true
	}
	switch mp.httpMethod {
	case "POST", "PUT", "PATCH":
		return true
	}
	return len(param.Annotations) == 0
}

// matchingParams returns the parameters named in the given list tags or
// carrying one of the given annotations.
func (mp *MethodParser) matchingParams(names map[string]bool, tags, annotations []string, params []java.ParameterModel) map[string]bool {
	result := make(map[string]bool)
	for _, name := range mp.listedParams(names, tags) {
		result[name] = true
	}
	for _, p := range params {
		if java.HasAnnotation(p.Annotations, annotations) {
			result[p.Name] = true
		}
	}
	return result
}

// listedParams reads tags holding lists of parameter names.
func (mp *MethodParser) listedParams(names map[string]bool, tags []string) []string {
	var result []string
	for _, v := range mp.levels.tagValues(tags) {
		for _, name := range splitList(v) {
			if names[name] && !contains(result, name) {
				result = append(result, name)
			}
		}
	}
	return result
}

// namedValues reads tags of the form "paramName value". The first value
// given for a parameter wins.
func (mp *MethodParser) namedValues(names map[string]bool, tags []string) map[string]string {
	result := make(map[string]string)
	for _, v := range mp.tagValues(tags) {
		name, value := nameValue(v)
		if !names[name] || value == "" {
			continue
		}
		if _, seen := result[name]; !seen {
			result[name] = value
		}
	}
	return result
}

// paramValues reads a per-parameter value from an annotation on the
// parameter, falling back to "paramName value" tags.
func (mp *MethodParser) paramValues(names map[string]bool, tags, annotations []string, params []java.ParameterModel, keys ...string) map[string]string {
	result := mp.namedValues(names, tags)
	for _, p := range params {
		a, ok := java.FindAnnotation(p.Annotations, annotations)
		if !ok {
			continue
		}
		for _, key := range keys {
			if v, ok := a.Value(key); ok && v != "" {
				result[p.Name] = v
				break
			}
		}
	}
	return result
}

func (mp *MethodParser) responseMessages() ([]ResponseMessage, error) {
	var messages []ResponseMessage
	methodDefaultError, _ := mp.tagValue(mp.p.opts.DefaultErrorTypeTags)

	for _, v := range mp.tagValues(mp.p.opts.ResponseMessageTags) {
		m := responseMessagePattern.FindStringSubmatch(v)
		if m == nil {
			continue
		}
		code, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		rm := ResponseMessage{
			Code:    code,
			Message: strings.TrimSpace(strings.TrimLeft(m[2], " \t|-")),
		}

		modelClass := strings.TrimSpace(strings.Trim(strings.TrimSpace(m[3]), "`"))
		if code >= 400 && modelClass == "" {
			modelClass = strings.TrimSpace(methodDefaultError)
			if modelClass == "" {
				modelClass = mp.ctx.ClassDefaultErrorType
			}
		}
		if modelClass != "" {
			c := mp.ctx.Classes.Find(modelClass)
			if c == nil {
				return nil, fmt.Errorf("method %s: response model %s of code %d not found among the documented classes: %w",
					mp.describe(), modelClass, code, ErrUnresolvableReference)
			}
			rm.ResponseModel = mp.p.translator.TypeName(c.Type(), nil).Value
			if err := mp.parseModels(c.Type(), ModelOptions{}); err != nil {
				return nil, err
			}
		}
		messages = append(messages, rm)
	}

	if len(messages) == 0 {
		return messages, nil
	}
	switch mode := mp.p.opts.ResponseMessageSortMode; mode {
	case "", SortAsAppears:
	case SortCodeAsc:
		sort.SliceStable(messages, func(i, j int) bool { return messages[i].Code < messages[j].Code })
	case SortCodeDesc:
		sort.SliceStable(messages, func(i, j int) bool { return messages[i].Code > messages[j].Code })
	default:
		return nil, fmt.Errorf("method %s: unknown response message sort mode %q: %w", mp.describe(), mode, ErrConfigurationConflict)
	}
	return messages, nil
}

func (mp *MethodParser) views() []string {
	a, ok := mp.levels.annotation(mp.p.opts.JsonViewAnnotations)
	if !ok {
		return nil
	}
	var views []string
	for _, v := range a.ValueList("value") {
		views = append(views, strings.TrimSuffix(v, ".class"))
	}
	return views
}

// returnType resolves the output type of the method and feeds every model
// shaped type it meets to the model parser.
func (mp *MethodParser) returnType() (string, *Items, error) {
	opts := mp.p.opts
	tr := mp.p.translator
	views := mp.views()

	var (
		typeName    string
		items       *Items
		modelType   *java.TypeModel
		varsToTypes map[string]java.TypeModel
	)

	rt := opts.unwrap(mp.method.ReturnType)
	custom, _ := mp.tagValue(opts.ResponseTypeTags)

	if strings.TrimSpace(custom) != "" {
		ct, err := mp.customReturnType(custom, views)
		if err != nil {
			return "", nil, err
		}
		typeName = ct.name
		switch {
		case ct.containerOf != nil:
			typeName = "array"
			modelType = ct.containerOf
			items = &Items{Ref: tr.TypeName(*ct.containerOf, views).Value}
		case ct.primitiveItems != nil:
			typeName = "array"
			items = ct.primitiveItems
		default:
			modelType = ct.returnType
			varsToTypes = ct.varsToTypes
		}
	} else if elem, ok := ContainerElement(rt); ok {
		typeName = "array"
		modelType = &elem
		if isPrimitiveType(elem) {
			n := tr.TypeName(elem, nil)
			items = &Items{Type: n.Value, Format: n.Format}
		} else {
			items = &Items{Ref: tr.TypeName(elem, views).Value}
		}
	} else {
		typeName = tr.TypeName(rt, views).Value
		for _, arg := range parameterizedTypes(rt) {
			if mp.ctx.Classes.FindType(arg) == nil {
				continue
			}
			if err := mp.parseModels(arg, ModelOptions{}); err != nil {
				return "", nil, err
			}
		}
		modelType = &rt
	}

	if modelType != nil {
		if err := mp.parseModels(*modelType, ModelOptions{Views: views, VarsToTypes: varsToTypes}); err != nil {
			return "", nil, err
		}
	}
	return typeName, items, nil
}

type customType struct {
	name           string
	returnType     *java.TypeModel
	containerOf    *java.TypeModel
	primitiveItems *Items
	varsToTypes    map[string]java.TypeModel
}

// customReturnType parses a response type override: Container<X>, Map<..>,
// Generic<A,B> or a plain class name.
func (mp *MethodParser) customReturnType(spec string, views []string) (*customType, error) {
	name := strings.TrimSpace(spec)
	if i := strings.Index(name, "<"); i > 0 && strings.HasSuffix(name, ">") &&
		matchesTypeName(name[:i], mp.p.opts.GenericWrapperTypes) {
		return mp.customReturnType(firstTypeArgument(name[i+1:len(name)-1]), views)
	}
	var args []*java.ClassModel
	parameterized := false

	if m := genericResponsePattern.FindStringSubmatch(name); m != nil {
		name = strings.TrimSpace(m[1])
		inner := strings.TrimSpace(m[2])
		switch {
		case IsCollection(name):
			ct := &customType{name: "array"}
			if n, ok := PrimitiveTypeOf(inner); ok {
				ct.primitiveItems = &Items{Type: n.Value, Format: n.Format}
				return ct, nil
			}
			c := mp.ctx.Classes.Find(inner)
			if c == nil {
				return nil, mp.customTypeNotFound(inner)
			}
			t := c.Type()
			ct.containerOf = &t
			return ct, nil
		case IsMap(name):
			return &customType{name: mp.p.translator.TypeName(java.TypeModel{Name: name}, nil).Value}, nil
		}
		parameterized = true
		for _, part := range strings.Split(inner, ",") {
			part = strings.TrimSpace(part)
			c := mp.ctx.Classes.Find(part)
			if c == nil {
				c = mp.p.typeClasses.Find(part)
			}
			args = append(args, c)
		}
	}

	if !parameterized {
		if n, ok := PrimitiveTypeOf(name); ok {
			return &customType{name: n.Value}, nil
		}
	}

	c := mp.ctx.Classes.Find(name)
	if c == nil {
		c = mp.p.typeClasses.Find(name)
	}
	if c == nil {
		return nil, mp.customTypeNotFound(name)
	}
	t := c.Type()
	ct := &customType{returnType: &t}

	if parameterized {
		ct.varsToTypes = make(map[string]java.TypeModel)
		for i, tp := range c.TypeParameters {
			if i < len(args) && args[i] != nil {
				ct.varsToTypes[tp.Name] = args[i].Type()
			}
		}
		for _, arg := range args {
			if arg == nil || !mp.ctx.Classes.Contains(arg) {
				continue
			}
			if err := mp.parseModels(arg.Type(), ModelOptions{VarsToTypes: ct.varsToTypes}); err != nil {
				return nil, err
			}
		}
	}

	ct.name = mp.p.translator.TypeName(t, views).Value
	return ct, nil
}

// firstTypeArgument returns the first top-level entry of a type argument
// list such as "Map<K, V>, T".
func firstTypeArgument(list string) string {
	depth := 0
	for i, r := range list {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(list[:i])
			}
		}
	}
	return strings.TrimSpace(list)
}

func (mp *MethodParser) customTypeNotFound(name string) error {
	return fmt.Errorf("method %s: could not find the class %s used as custom response type; "+
		"if it lives in a dependency, add its class model to the documented classes: %w",
		mp.describe(), name, ErrUnresolvableReference)
}

// authorizations resolves the oauth2 requirement of the operation. A nil
// result inherits the API default; an empty one means no authentication.
func (mp *MethodParser) authorizations() (*OperationAuthorizations, error) {
	opts := mp.p.opts
	if mp.levels.hasTag(opts.UnauthOperationTags) {
		return &OperationAuthorizations{}, nil
	}

	registered := opts.apiScopes()
	if values := mp.tagValues(opts.OperationScopeTags); len(values) > 0 {
		auth := &OperationAuthorizations{}
		for _, v := range values {
			scope, ok := registered[strings.TrimSpace(v)]
			if !ok {
				return nil, fmt.Errorf("method %s: scope %q is not registered in the API authorizations: %w",
					mp.describe(), strings.TrimSpace(v), ErrConfigurationConflict)
			}
			auth.OAuth2 = append(auth.OAuth2, scope)
		}
		return auth, nil
	}

	spec, ok := mp.tagValue(opts.AuthOperationTags)
	if !ok {
		return nil, nil
	}
	for _, unauth := range opts.UnauthOperationTagValues {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(spec)), strings.ToLower(unauth)) {
			return &OperationAuthorizations{}, nil
		}
	}
	if len(opts.AuthOperationScopes) == 0 {
		return nil, nil
	}
	auth := &OperationAuthorizations{}
	for _, name := range opts.AuthOperationScopes {
		scope, ok := registered[name]
		if !ok {
			return nil, fmt.Errorf("method %s: default scope %q is not registered in the API authorizations: %w",
				mp.describe(), name, ErrConfigurationConflict)
		}
		auth.OAuth2 = append(auth.OAuth2, scope)
	}
	return auth, nil
}

func (mp *MethodParser) summaryAndNotes() (string, string) {
	opts := mp.p.opts
	summary := mp.levels.firstSentence()
	notes := mp.levels.body()
	if summary != "" {
		notes = strings.ReplaceAll(notes, summary, "")
	}
	notes = strings.TrimSpace(notes)

	if v, ok := mp.tagValue(opts.OperationNotesTags); ok {
		notes = v
	}
	if v, ok := mp.tagValue(opts.OperationSummaryTags); ok {
		summary = v
	}
	return opts.ReplaceVars(summary), opts.ReplaceVars(notes)
}

// mediaTypes reads @Consumes or @Produces from the method, falling back to
// the class.
func (mp *MethodParser) mediaTypes(names []string) []string {
	a, ok := mp.levels.annotation(names)
	if !ok {
		a, ok = mp.p.docs.classAnnotation(mp.class, names)
	}
	if !ok {
		return nil
	}
	var result []string
	for _, v := range a.ValueList("value") {
		for _, part := range strings.Split(v, ",") {
			if part = mediaType(part); part != "" && !contains(result, part) {
				result = append(result, part)
			}
		}
	}
	return result
}

var mediaTypeConstants = map[string]string{
	"APPLICATION_JSON":            "application/json",
	"APPLICATION_XML":             "application/xml",
	"APPLICATION_OCTET_STREAM":    "application/octet-stream",
	"APPLICATION_FORM_URLENCODED": "application/x-www-form-urlencoded",
	"APPLICATION_ATOM_XML":        "application/atom+xml",
	"APPLICATION_XHTML_XML":       "application/xhtml+xml",
	"APPLICATION_SVG_XML":         "application/svg+xml",
	"MULTIPART_FORM_DATA":         "multipart/form-data",
	"TEXT_PLAIN":                  "text/plain",
	"TEXT_XML":                    "text/xml",
	"TEXT_HTML":                   "text/html",
	"SERVER_SENT_EVENTS":          "text/event-stream",
	"WILDCARD":                    "*/*",
	"APPLICATION_JSON_PATCH_JSON": "application/json-patch+json",
}

// mediaType resolves MediaType.X constant references kept verbatim by the
// class model source.
func mediaType(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.LastIndex(v, "MediaType."); i >= 0 {
		if mt, ok := mediaTypeConstants[v[i+len("MediaType."):]]; ok {
			return mt
		}
	}
	return v
}

// modelSet keeps models in discovery order, dropping exact duplicates.
// Different bodies under one id are kept so the walker can report them.
type modelSet struct {
	models []Model
}

func (s *modelSet) add(models ...Model) {
	for _, m := range models {
		if !s.has(m) {
			s.models = append(s.models, m)
		}
	}
}

func (s *modelSet) has(m Model) bool {
	for _, existing := range s.models {
		if existing.ID == m.ID && reflect.DeepEqual(existing, m) {
			return true
		}
	}
	return false
}
