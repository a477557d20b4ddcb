package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/shopspring/decimal"

	"github.com/dhamidi/doclet/doclet"
)

const (
	openAPIVersion   = "3.0.3"
	oauth2SchemeName = "oauth2"
	schemaRefPrefix  = "#/components/schemas/"
	defaultMediaType = "application/json"
	formMediaType    = "application/x-www-form-urlencoded"
	multipartType    = "multipart/form-data"
)

// ToOpenAPI converts the declarations into an OpenAPI 3 document. Each
// declaration becomes a tag, models become component schemas and oauth2
// scopes become an implicit flow security scheme.
func ToOpenAPI(info *openapi3.Info, h Header, decls doclet.Declarations) (*openapi3.T, error) {
	spec := &openapi3.T{
		OpenAPI:    openAPIVersion,
		Info:       info,
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: openapi3.Schemas{}},
	}
	if h.BasePath != "" && h.BasePath != "/" {
		spec.Servers = openapi3.Servers{{URL: h.BasePath}}
	}
	if scheme := securityScheme(h.Authorizations); scheme != nil {
		spec.Components.SecuritySchemes = openapi3.SecuritySchemes{
			oauth2SchemeName: &openapi3.SecuritySchemeRef{Value: scheme},
		}
	}

	for _, decl := range decls.Sorted() {
		tag := doclet.ResourceName(decl.ResourcePath)
		spec.Tags = append(spec.Tags, &openapi3.Tag{Name: tag, Description: decl.Description})

		for _, id := range decl.ModelIDs() {
			if _, ok := spec.Components.Schemas[id]; ok {
				continue
			}
			spec.Components.Schemas[id] = openapi3.NewSchemaRef("", modelSchema(decl.Models[id]))
		}

		for _, api := range decl.Apis {
			for _, op := range api.Operations {
				converted, err := convertOperation(tag, op)
				if err != nil {
					return nil, fmt.Errorf("%s %s: %w", op.Method, api.Path, err)
				}
				spec.AddOperation(api.Path, op.Method, converted)
			}
		}
	}
	return spec, nil
}

func securityScheme(auth *doclet.Authorizations) *openapi3.SecurityScheme {
	if auth == nil || auth.OAuth2 == nil {
		return nil
	}
	flow := &openapi3.OAuthFlow{Scopes: map[string]string{}}
	if g := auth.OAuth2.GrantTypes; g != nil && g.Implicit != nil {
		flow.AuthorizationURL = g.Implicit.LoginEndpoint.URL
	}
	for _, s := range auth.OAuth2.Scopes {
		flow.Scopes[s.Scope] = s.Description
	}
	return &openapi3.SecurityScheme{
		Type:  "oauth2",
		Flows: &openapi3.OAuthFlows{Implicit: flow},
	}
}

func convertOperation(tag string, op *doclet.Operation) (*openapi3.Operation, error) {
	out := openapi3.NewOperation()
	out.OperationID = op.Nickname
	out.Summary = op.Summary
	out.Description = op.Notes
	out.Deprecated = op.Deprecated
	out.Tags = []string{tag}

	var form []doclet.ApiParameter
	for _, p := range op.Parameters {
		switch p.ParamType {
		case doclet.CategoryBody:
			schema, err := parameterSchema(p)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
			}
			out.RequestBody = &openapi3.RequestBodyRef{Value: &openapi3.RequestBody{
				Description: p.Description,
				Required:    isTrue(p.Required),
				Content:     content(op.Consumes, schema),
			}}
		case doclet.CategoryForm:
			form = append(form, p)
		default:
			param, err := convertParameter(p)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
			}
			out.AddParameter(param)
		}
	}
	if len(form) > 0 && out.RequestBody == nil {
		body, err := formBody(op.Consumes, form)
		if err != nil {
			return nil, err
		}
		out.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}

	out.Responses = responses(op)

	if op.Authorizations != nil {
		reqs := openapi3.SecurityRequirements{}
		if len(op.Authorizations.OAuth2) > 0 {
			var scopes []string
			for _, s := range op.Authorizations.OAuth2 {
				scopes = append(scopes, s.Scope)
			}
			reqs = append(reqs, openapi3.NewSecurityRequirement().Authenticate(oauth2SchemeName, scopes...))
		}
		out.Security = &reqs
	}
	return out, nil
}

func convertParameter(p doclet.ApiParameter) (*openapi3.Parameter, error) {
	schema, err := parameterSchema(p)
	if err != nil {
		return nil, err
	}
	param := &openapi3.Parameter{
		Name:        p.Name,
		In:          p.ParamType,
		Description: p.Description,
		Required:    isTrue(p.Required) || p.ParamType == doclet.CategoryPath,
	}
	if isTrue(p.AllowMultiple) {
		schema = openapi3.NewArraySchema().WithItems(schema)
		param.Style = openapi3.SerializationForm
		param.Explode = openapi3.BoolPtr(false)
	}
	param.Schema = openapi3.NewSchemaRef("", schema)
	return param, nil
}

func formBody(consumes []string, params []doclet.ApiParameter) (*openapi3.RequestBody, error) {
	mediaType := formMediaType
	object := openapi3.NewObjectSchema()
	for _, p := range params {
		schema, err := parameterSchema(p)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		if p.Type == "File" {
			mediaType = multipartType
		}
		if p.Description != "" {
			schema.Description = p.Description
		}
		object.Properties[p.Name] = openapi3.NewSchemaRef("", schema)
		if isTrue(p.Required) {
			object.Required = append(object.Required, p.Name)
		}
	}
	for _, c := range consumes {
		if c == multipartType {
			mediaType = multipartType
		}
	}
	return &openapi3.RequestBody{Content: content([]string{mediaType}, object)}, nil
}

func responses(op *doclet.Operation) *openapi3.Responses {
	success := openapi3.NewResponse().WithDescription("successful operation")
	if schema := typeSchema(op.Type, "", op.Items); schema != nil {
		success.Content = contentRef(op.Produces, schema)
	}

	var opts []openapi3.NewResponsesOption
	hasSuccess := false
	for _, msg := range op.ResponseMessages {
		resp := openapi3.NewResponse().WithDescription(msg.Message)
		switch {
		case msg.ResponseModel != "":
			resp.Content = contentRef(op.Produces, openapi3.NewSchemaRef(schemaRefPrefix+msg.ResponseModel, nil))
		case msg.Code >= 200 && msg.Code < 300 && !hasSuccess:
			resp.Content = success.Content
		}
		if msg.Code >= 200 && msg.Code < 300 {
			hasSuccess = true
		}
		opts = append(opts, openapi3.WithStatus(msg.Code, &openapi3.ResponseRef{Value: resp}))
	}
	if !hasSuccess {
		opts = append([]openapi3.NewResponsesOption{openapi3.WithStatus(200, &openapi3.ResponseRef{Value: success})}, opts...)
	}
	return openapi3.NewResponses(opts...)
}

// typeSchema maps a Swagger 1.2 type/format pair to a schema reference.
// It returns nil for void.
func typeSchema(typ, format string, items *doclet.Items) *openapi3.SchemaRef {
	switch typ {
	case "", "void":
		return nil
	case "array":
		elem := itemsSchema(items)
		if elem == nil {
			elem = openapi3.NewSchemaRef("", openapi3.NewStringSchema())
		}
		arr := openapi3.NewArraySchema()
		arr.Items = elem
		return openapi3.NewSchemaRef("", arr)
	case "File":
		return openapi3.NewSchemaRef("", openapi3.NewStringSchema().WithFormat("binary"))
	case "integer", "number", "string", "boolean", "object":
		s := &openapi3.Schema{Type: &openapi3.Types{typ}, Format: format}
		return openapi3.NewSchemaRef("", s)
	}
	return openapi3.NewSchemaRef(schemaRefPrefix+typ, nil)
}

func itemsSchema(items *doclet.Items) *openapi3.SchemaRef {
	if items == nil {
		return nil
	}
	if items.Ref != "" {
		return openapi3.NewSchemaRef(schemaRefPrefix+items.Ref, nil)
	}
	return typeSchema(items.Type, items.Format, nil)
}

// parameterSchema builds an inline schema for a parameter. Model types are
// wrapped with allOf so the parameter can carry its own constraints.
func parameterSchema(p doclet.ApiParameter) (*openapi3.Schema, error) {
	ref := typeSchema(p.Type, p.Format, p.Items)
	var schema *openapi3.Schema
	switch {
	case ref == nil:
		schema = openapi3.NewStringSchema()
	case ref.Ref != "":
		schema = &openapi3.Schema{AllOf: openapi3.SchemaRefs{ref}}
	default:
		schema = ref.Value
	}
	schema.UniqueItems = isTrue(p.UniqueItems)
	for _, v := range p.Enum {
		schema.Enum = append(schema.Enum, v)
	}

	var err error
	if schema.Min, err = bound(p.Minimum); err != nil {
		return nil, fmt.Errorf("minimum: %w", err)
	}
	if schema.Max, err = bound(p.Maximum); err != nil {
		return nil, fmt.Errorf("maximum: %w", err)
	}
	if p.DefaultValue != "" {
		if schema.Default, err = defaultValue(p.Type, p.DefaultValue); err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
	}
	return schema, nil
}

func bound(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	f, _ := d.Float64()
	return &f, nil
}

func defaultValue(typ, s string) (any, error) {
	switch typ {
	case "integer":
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, err
		}
		return d.IntPart(), nil
	case "number":
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, err
		}
		f, _ := d.Float64()
		return f, nil
	case "boolean":
		return strconv.ParseBool(strings.ToLower(s))
	}
	return s, nil
}

func modelSchema(m doclet.Model) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Description = m.Description
	schema.Required = m.Required
	for _, prop := range m.Properties {
		ref := typeSchema(prop.Type, prop.Format, prop.Items)
		if prop.Ref != "" {
			ref = openapi3.NewSchemaRef(schemaRefPrefix+prop.Ref, nil)
		}
		if ref == nil {
			ref = openapi3.NewSchemaRef("", openapi3.NewStringSchema())
		}
		if ref.Value != nil {
			ref.Value.Description = prop.Description
			ref.Value.UniqueItems = isTrue(prop.UniqueItems)
			for _, v := range prop.Enum {
				ref.Value.Enum = append(ref.Value.Enum, v)
			}
			ref.Value.Min, _ = bound(prop.Minimum)
			ref.Value.Max, _ = bound(prop.Maximum)
		}
		schema.Properties[prop.Name] = ref
	}
	return schema
}

func content(consumes []string, schema *openapi3.Schema) openapi3.Content {
	return contentRef(consumes, openapi3.NewSchemaRef("", schema))
}

func contentRef(mediaTypes []string, ref *openapi3.SchemaRef) openapi3.Content {
	if len(mediaTypes) == 0 {
		mediaTypes = []string{defaultMediaType}
	}
	c := openapi3.NewContent()
	for _, mt := range mediaTypes {
		c[mt] = openapi3.NewMediaType().WithSchemaRef(ref)
	}
	return c
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
