package doclet

import "github.com/dhamidi/doclet/java"

// Name is a translated output type name with its optional format.
type Name struct {
	Value  string
	Format string
}

// Translator maps Java types to the names used in the API description.
type Translator interface {
	// TypeName translates a type; views are the json view classes in effect.
	TypeName(t java.TypeModel, views []string) Name
	// ParameterTypeName translates the type of a parameter. param may be nil
	// for bindings that are not method parameters, such as fields.
	ParameterTypeName(multipart bool, param *java.ParameterModel, t java.TypeModel) Name
}

// ModelOptions tune one invocation of a ModelParser.
type ModelOptions struct {
	Views []string
	// VarsToTypes binds type variable names of the parsed type.
	VarsToTypes       map[string]java.TypeModel
	ConsumesMultipart bool
	// Composite parses a bean parameter: only fields bound to a request
	// parameter become properties, each carrying its ParamCategory.
	Composite bool
}

// ModelParser turns a type into the set of models describing it. rootID is
// the id of the model of t itself, or "" when t is not model shaped.
type ModelParser interface {
	ParseModels(t java.TypeModel, opts ModelOptions) (models []Model, rootID string, err error)
}
