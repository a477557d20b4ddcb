package doclet

import (
	"regexp"
	"strings"
)

// Response message sort modes.
const (
	SortCodeAsc   = "CODE_ASC"
	SortCodeDesc  = "CODE_DESC"
	SortAsAppears = "AS_APPEARS"
)

// Options controls one parse run. It is built once and never mutated while
// a run is in progress. Tag names are given without the leading '@'.
type Options struct {
	// JaxRsPackages are the packages JAX-RS annotations are looked up in,
	// e.g. javax.ws.rs and jakarta.ws.rs.
	JaxRsPackages            []string
	FormDataParamAnnotations []string
	ExcludeParamAnnotations  []string
	RequiredParamAnnotations []string
	OptionalParamAnnotations []string
	ParamMinValueAnnotations []string
	ParamMaxValueAnnotations []string
	DeprecatedAnnotations    []string
	JsonViewAnnotations      []string

	ExcludeOperationTags    []string
	ExcludeParamsTags       []string
	RequiredParamsTags      []string
	OptionalParamsTags      []string
	CsvParamsTags           []string
	ParamsMinValueTags      []string
	ParamsMaxValueTags      []string
	ParamsDefaultValueTags  []string
	ParamsNameTags          []string
	ResponseMessageTags     []string
	ResponseTypeTags        []string
	InputTypeTags           []string
	DefaultErrorTypeTags    []string
	OperationNotesTags      []string
	OperationSummaryTags    []string
	ResourceTags            []string
	ResourcePriorityTags    []string
	ResourceDescriptionTags []string
	ApiDescriptionTags      []string
	DeprecatedTags          []string
	UnauthOperationTags     []string
	AuthOperationTags       []string
	OperationScopeTags      []string

	// UnauthOperationTagValues are value prefixes of an auth tag meaning the
	// operation needs no authentication.
	UnauthOperationTagValues []string

	// GenericWrapperTypes are generic types replaced by their first type
	// argument wherever they appear as a parameter or return type.
	GenericWrapperTypes []string

	ResponseMessageSortMode     string
	ParseModels                 bool
	ExcludeDeprecatedOperations bool
	ExcludeDeprecatedParams     bool
	SortApisByPath              bool

	APIAuthorizations   *Authorizations
	AuthOperationScopes []string

	// Variables are substituted for ${name} in descriptions, summaries and
	// tag values.
	Variables map[string]string
}

// Authorizations is the API level authorization object of the resource
// listing.
type Authorizations struct {
	OAuth2 *OAuth2 `json:"oauth2,omitempty" yaml:"oauth2"`
}

type OAuth2 struct {
	Type       string        `json:"type" yaml:"type"`
	Scopes     []OAuth2Scope `json:"scopes,omitempty" yaml:"scopes"`
	GrantTypes *OAuth2Grants `json:"grantTypes,omitempty" yaml:"grantTypes"`
}

type OAuth2Scope struct {
	Scope       string `json:"scope" yaml:"scope"`
	Description string `json:"description,omitempty" yaml:"description"`
}

type OAuth2Grants struct {
	Implicit *ImplicitGrant `json:"implicit,omitempty" yaml:"implicit"`
}

type ImplicitGrant struct {
	LoginEndpoint struct {
		URL string `json:"url" yaml:"url"`
	} `json:"loginEndpoint" yaml:"loginEndpoint"`
	TokenName string `json:"tokenName,omitempty" yaml:"tokenName"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() *Options {
	return &Options{
		JaxRsPackages: []string{"javax.ws.rs", "jakarta.ws.rs"},
		FormDataParamAnnotations: []string{
			"org.glassfish.jersey.media.multipart.FormDataParam",
			"com.sun.jersey.multipart.FormDataParam",
		},
		ExcludeParamAnnotations: []string{
			"javax.ws.rs.core.Context",
			"jakarta.ws.rs.core.Context",
			"javax.ws.rs.CookieParam",
			"jakarta.ws.rs.CookieParam",
		},
		RequiredParamAnnotations: []string{
			"javax.validation.constraints.NotNull",
			"jakarta.validation.constraints.NotNull",
		},
		OptionalParamAnnotations: []string{
			"javax.annotation.Nullable",
			"jakarta.annotation.Nullable",
		},
		ParamMinValueAnnotations: []string{
			"javax.validation.constraints.Min",
			"javax.validation.constraints.DecimalMin",
			"jakarta.validation.constraints.Min",
			"jakarta.validation.constraints.DecimalMin",
		},
		ParamMaxValueAnnotations: []string{
			"javax.validation.constraints.Max",
			"javax.validation.constraints.DecimalMax",
			"jakarta.validation.constraints.Max",
			"jakarta.validation.constraints.DecimalMax",
		},
		DeprecatedAnnotations: []string{"java.lang.Deprecated"},
		JsonViewAnnotations:   []string{"com.fasterxml.jackson.annotation.JsonView"},

		ExcludeOperationTags:    []string{"exclude", "hidden", "hide"},
		ExcludeParamsTags:       []string{"excludeParams", "hiddenParams", "hideParams"},
		RequiredParamsTags:      []string{"requiredParams"},
		OptionalParamsTags:      []string{"optionalParams"},
		CsvParamsTags:           []string{"csvParams"},
		ParamsMinValueTags:      []string{"paramsMinValue", "paramMinValue"},
		ParamsMaxValueTags:      []string{"paramsMaxValue", "paramMaxValue"},
		ParamsDefaultValueTags:  []string{"paramsDefaultValue", "paramDefaultValue"},
		ParamsNameTags:          []string{"paramsName", "paramName"},
		ResponseMessageTags:     []string{"responseMessage", "status", "errorResponse", "errorCode", "successResponse", "successCode"},
		ResponseTypeTags:        []string{"responseType", "outputType", "returnType"},
		InputTypeTags:           []string{"inputType", "bodyType"},
		DefaultErrorTypeTags:    []string{"defaultErrorType"},
		OperationNotesTags:      []string{"description", "notes", "operationNotes"},
		OperationSummaryTags:    []string{"summary", "endpointName"},
		ResourceTags:            []string{"resourcePath", "resource", "parentEndpointName"},
		ResourcePriorityTags:    []string{"resourcePriority", "priority"},
		ResourceDescriptionTags: []string{"resourceDescription"},
		ApiDescriptionTags:      []string{"apiDescription"},
		DeprecatedTags:          []string{"deprecated"},
		UnauthOperationTags:     []string{"noAuth", "unauthentication", "unauthenticated"},
		AuthOperationTags:       []string{"authentication", "auth"},
		OperationScopeTags:      []string{"scope", "oauth2Scope"},

		UnauthOperationTagValues: []string{"not", "off", "false", "no"},

		GenericWrapperTypes: []string{
			"com.sun.jersey.api.JResponse",
			"com.google.common.base.Optional",
			"java.util.Optional",
		},

		ResponseMessageSortMode:     SortCodeAsc,
		ParseModels:                 true,
		ExcludeDeprecatedOperations: true,
		ExcludeDeprecatedParams:     true,
		SortApisByPath:              true,
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ReplaceVars substitutes ${name} references from Variables. Unknown names
// are left as written.
func (o *Options) ReplaceVars(s string) string {
	if len(o.Variables) == 0 || !strings.Contains(s, "${") {
		return s
	}
	return varPattern.ReplaceAllStringFunc(s, func(ref string) string {
		name := strings.TrimSpace(ref[2 : len(ref)-1])
		if v, ok := o.Variables[name]; ok {
			return v
		}
		return ref
	})
}

// JaxRs returns the qualified names of a JAX-RS annotation in every
// configured package.
func (o *Options) JaxRs(simple ...string) []string {
	names := make([]string, 0, len(simple)*len(o.JaxRsPackages))
	for _, pkg := range o.JaxRsPackages {
		for _, s := range simple {
			names = append(names, pkg+"."+s)
		}
	}
	return names
}

// apiScopes indexes the registered oauth2 scopes.
func (o *Options) apiScopes() map[string]OAuth2Scope {
	scopes := make(map[string]OAuth2Scope)
	if o.APIAuthorizations == nil || o.APIAuthorizations.OAuth2 == nil {
		return scopes
	}
	for _, s := range o.APIAuthorizations.OAuth2.Scopes {
		scopes[s.Scope] = s
	}
	return scopes
}
