package doclet

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
)

// Parameter categories. CategoryComposite only exists before a bean
// parameter is expanded into its fields.
const (
	CategoryPath      = "path"
	CategoryQuery     = "query"
	CategoryHeader    = "header"
	CategoryForm      = "form"
	CategoryBody      = "body"
	CategoryComposite = "composite"
)

// PriorityUnset marks a declaration nobody gave a priority.
const PriorityUnset = math.MaxInt

// Declarations maps a sanitized resource path to its declaration.
type Declarations map[string]*Declaration

// Declaration describes every endpoint sharing one resource path.
type Declaration struct {
	ResourcePath string           `json:"resourcePath"`
	Description  string           `json:"-"`
	Priority     int              `json:"-"`
	Apis         []*Api           `json:"apis"`
	Models       map[string]Model `json:"models,omitempty"`
}

func newDeclaration(resourcePath string) *Declaration {
	return &Declaration{
		ResourcePath: resourcePath,
		Priority:     PriorityUnset,
		Models:       make(map[string]Model),
	}
}

// Api groups the operations of one full path.
type Api struct {
	Path        string       `json:"path"`
	Description string       `json:"description,omitempty"`
	Operations  []*Operation `json:"operations"`
}

type Operation struct {
	Method           string                   `json:"method"`
	Nickname         string                   `json:"nickname"`
	Type             string                   `json:"type,omitempty"`
	Items            *Items                   `json:"items,omitempty"`
	Parameters       []ApiParameter           `json:"parameters"`
	ResponseMessages []ResponseMessage        `json:"responseMessages,omitempty"`
	Summary          string                   `json:"summary,omitempty"`
	Notes            string                   `json:"notes,omitempty"`
	Consumes         []string                 `json:"consumes,omitempty"`
	Produces         []string                 `json:"produces,omitempty"`
	Authorizations   *OperationAuthorizations `json:"authorizations,omitempty"`
	Deprecated       bool                     `json:"deprecated,omitempty"`

	// ownParams counts the parameters the method declared before class
	// path parameters were backfilled.
	ownParams int
}

// HasParameter reports whether a parameter with the given rendered name is
// already attached.
func (op *Operation) HasParameter(name string) bool {
	for _, p := range op.Parameters {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Items describes the element of an array: a primitive type/format or a
// model reference.
type Items struct {
	Ref    string `json:"$ref,omitempty"`
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`
}

// ApiParameter is one resolved operation parameter. Its identity is the
// (ParamType, Name) pair. A nil Required means optional and is omitted from
// the output.
type ApiParameter struct {
	ParamType     string   `json:"paramType"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Required      *bool    `json:"required,omitempty"`
	AllowMultiple *bool    `json:"allowMultiple,omitempty"`
	Type          string   `json:"type,omitempty"`
	Format        string   `json:"format,omitempty"`
	Items         *Items   `json:"items,omitempty"`
	UniqueItems   *bool    `json:"uniqueItems,omitempty"`
	Enum          []string `json:"enum,omitempty"`
	Minimum       string   `json:"minimum,omitempty"`
	Maximum       string   `json:"maximum,omitempty"`
	DefaultValue  string   `json:"defaultValue,omitempty"`
}

type ResponseMessage struct {
	Code          int    `json:"code"`
	Message       string `json:"message"`
	ResponseModel string `json:"responseModel,omitempty"`
}

// OperationAuthorizations is the authorization requirement of one
// operation. A non-nil value without scopes means "no authentication" and
// marshals to {}.
type OperationAuthorizations struct {
	OAuth2 []OAuth2Scope `json:"oauth2,omitempty"`
}

// Model is a named data shape referenced by a parameter or response.
type Model struct {
	ID          string
	Description string
	Properties  []Property
	Required    []string
	Optional    []string
}

// Property is one model field. Name is the rendered name; RawFieldName and
// ParamCategory are only used when a model backs a composite parameter.
type Property struct {
	Name          string   `json:"-"`
	RawFieldName  string   `json:"-"`
	ParamCategory string   `json:"-"`
	Type          string   `json:"type,omitempty"`
	Format        string   `json:"format,omitempty"`
	Ref           string   `json:"$ref,omitempty"`
	Items         *Items   `json:"items,omitempty"`
	Description   string   `json:"description,omitempty"`
	UniqueItems   *bool    `json:"uniqueItems,omitempty"`
	Enum          []string `json:"enum,omitempty"`
	Minimum       string   `json:"minimum,omitempty"`
	Maximum       string   `json:"maximum,omitempty"`
	DefaultValue  string   `json:"defaultValue,omitempty"`
}

// Property returns the property with the given rendered name.
func (m Model) Property(name string) (Property, bool) {
	for _, p := range m.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// MarshalJSON writes properties as an object keeping declaration order.
func (m Model) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"id":`)
	id, err := json.Marshal(m.ID)
	if err != nil {
		return nil, err
	}
	buf.Write(id)

	if m.Description != "" {
		desc, err := json.Marshal(m.Description)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"description":`)
		buf.Write(desc)
	}

	if len(m.Required) > 0 {
		req, err := json.Marshal(m.Required)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"required":`)
		buf.Write(req)
	}

	buf.WriteString(`,"properties":{`)
	for i, p := range m.Properties {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// Method is the resolved form of one resource method. A method without an
// HTTP verb is a sub-resource locator.
type Method struct {
	HTTPMethod       string
	Name             string
	Path             string
	Parameters       []ApiParameter
	ResponseMessages []ResponseMessage
	Summary          string
	Notes            string
	ReturnType       string
	ReturnItems      *Items
	Consumes         []string
	Produces         []string
	Authorizations   *OperationAuthorizations
	Deprecated       bool

	// Models holds every model discovered while resolving the method.
	Models []Model
}

func (m *Method) IsSubResource() bool {
	return m.HTTPMethod == ""
}

func (m *Method) operation() *Operation {
	return &Operation{
		Method:           m.HTTPMethod,
		Nickname:         m.Name,
		Type:             m.ReturnType,
		Items:            m.ReturnItems,
		Parameters:       append([]ApiParameter(nil), m.Parameters...),
		ResponseMessages: m.ResponseMessages,
		Summary:          m.Summary,
		Notes:            m.Notes,
		Consumes:         m.Consumes,
		Produces:         m.Produces,
		Authorizations:   m.Authorizations,
		Deprecated:       m.Deprecated,
		ownParams:        len(m.Parameters),
	}
}

// Sorted returns the declarations ordered by priority, then resource path.
func (d Declarations) Sorted() []*Declaration {
	result := make([]*Declaration, 0, len(d))
	for _, decl := range d {
		result = append(result, decl)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority < result[j].Priority
		}
		return result[i].ResourcePath < result[j].ResourcePath
	})
	return result
}

// ModelIDs returns the ids of the declaration's models in sorted order.
func (d *Declaration) ModelIDs() []string {
	ids := make([]string, 0, len(d.Models))
	for id := range d.Models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (d *Declaration) api(path string) *Api {
	for _, api := range d.Apis {
		if api.Path == path {
			return api
		}
	}
	return nil
}

func (d *Declaration) sortApis() {
	sort.SliceStable(d.Apis, func(i, j int) bool {
		return d.Apis[i].Path < d.Apis[j].Path
	})
}

func boolPtr(b bool) *bool {
	return &b
}
