// Package config loads doclet options from a YAML file. Keys that are
// absent keep the values of doclet.DefaultOptions.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/doclet/doclet"
)

// FileName is the configuration file looked up by Find.
const FileName = "doclet.yaml"

// Swagger 1.2 listing defaults.
const (
	DefaultAPIVersion     = "0"
	DefaultSwaggerVersion = "1.2"
	DefaultBasePath       = "/"
)

// Config is the YAML representation of a run's options plus the listing
// header.
type Config struct {
	APIVersion     string `yaml:"apiVersion"`
	BasePath       string `yaml:"basePath"`
	SwaggerVersion string `yaml:"swaggerVersion"`

	JaxRsPackages []string    `yaml:"jaxrsPackages"`
	Annotations   Annotations `yaml:"annotations"`
	Tags          Tags        `yaml:"tags"`

	UnauthOperationTagValues []string `yaml:"unauthOperationTagValues"`
	GenericWrapperTypes      []string `yaml:"genericWrapperTypes"`

	ResponseMessageSortMode     string `yaml:"responseMessageSortMode"`
	ParseModels                 bool   `yaml:"parseModels"`
	ExcludeDeprecatedOperations bool   `yaml:"excludeDeprecatedOperations"`
	ExcludeDeprecatedParams     bool   `yaml:"excludeDeprecatedParams"`
	SortApisByPath              bool   `yaml:"sortApisByPath"`

	Authorizations      *doclet.Authorizations `yaml:"authorizations"`
	AuthOperationScopes []string               `yaml:"authOperationScopes"`

	Variables map[string]string `yaml:"variables"`
}

// Annotations lists qualified annotation names per role.
type Annotations struct {
	FormDataParam []string `yaml:"formDataParam"`
	ExcludeParam  []string `yaml:"excludeParam"`
	RequiredParam []string `yaml:"requiredParam"`
	OptionalParam []string `yaml:"optionalParam"`
	ParamMinValue []string `yaml:"paramMinValue"`
	ParamMaxValue []string `yaml:"paramMaxValue"`
	Deprecated    []string `yaml:"deprecated"`
	JsonView      []string `yaml:"jsonView"`
}

// Tags lists javadoc tag names, without '@', per role.
type Tags struct {
	ExcludeOperation    []string `yaml:"excludeOperation"`
	ExcludeParams       []string `yaml:"excludeParams"`
	RequiredParams      []string `yaml:"requiredParams"`
	OptionalParams      []string `yaml:"optionalParams"`
	CsvParams           []string `yaml:"csvParams"`
	ParamsMinValue      []string `yaml:"paramsMinValue"`
	ParamsMaxValue      []string `yaml:"paramsMaxValue"`
	ParamsDefaultValue  []string `yaml:"paramsDefaultValue"`
	ParamsName          []string `yaml:"paramsName"`
	ResponseMessage     []string `yaml:"responseMessage"`
	ResponseType        []string `yaml:"responseType"`
	InputType           []string `yaml:"inputType"`
	DefaultErrorType    []string `yaml:"defaultErrorType"`
	OperationNotes      []string `yaml:"operationNotes"`
	OperationSummary    []string `yaml:"operationSummary"`
	Resource            []string `yaml:"resource"`
	ResourcePriority    []string `yaml:"resourcePriority"`
	ResourceDescription []string `yaml:"resourceDescription"`
	ApiDescription      []string `yaml:"apiDescription"`
	Deprecated          []string `yaml:"deprecated"`
	UnauthOperation     []string `yaml:"unauthOperation"`
	AuthOperation       []string `yaml:"authOperation"`
	OperationScope      []string `yaml:"operationScope"`
}

// Default returns the configuration equivalent to doclet.DefaultOptions.
func Default() *Config {
	o := doclet.DefaultOptions()
	return &Config{
		APIVersion:     DefaultAPIVersion,
		BasePath:       DefaultBasePath,
		SwaggerVersion: DefaultSwaggerVersion,
		JaxRsPackages:  o.JaxRsPackages,
		Annotations: Annotations{
			FormDataParam: o.FormDataParamAnnotations,
			ExcludeParam:  o.ExcludeParamAnnotations,
			RequiredParam: o.RequiredParamAnnotations,
			OptionalParam: o.OptionalParamAnnotations,
			ParamMinValue: o.ParamMinValueAnnotations,
			ParamMaxValue: o.ParamMaxValueAnnotations,
			Deprecated:    o.DeprecatedAnnotations,
			JsonView:      o.JsonViewAnnotations,
		},
		Tags: Tags{
			ExcludeOperation:    o.ExcludeOperationTags,
			ExcludeParams:       o.ExcludeParamsTags,
			RequiredParams:      o.RequiredParamsTags,
			OptionalParams:      o.OptionalParamsTags,
			CsvParams:           o.CsvParamsTags,
			ParamsMinValue:      o.ParamsMinValueTags,
			ParamsMaxValue:      o.ParamsMaxValueTags,
			ParamsDefaultValue:  o.ParamsDefaultValueTags,
			ParamsName:          o.ParamsNameTags,
			ResponseMessage:     o.ResponseMessageTags,
			ResponseType:        o.ResponseTypeTags,
			InputType:           o.InputTypeTags,
			DefaultErrorType:    o.DefaultErrorTypeTags,
			OperationNotes:      o.OperationNotesTags,
			OperationSummary:    o.OperationSummaryTags,
			Resource:            o.ResourceTags,
			ResourcePriority:    o.ResourcePriorityTags,
			ResourceDescription: o.ResourceDescriptionTags,
			ApiDescription:      o.ApiDescriptionTags,
			Deprecated:          o.DeprecatedTags,
			UnauthOperation:     o.UnauthOperationTags,
			AuthOperation:       o.AuthOperationTags,
			OperationScope:      o.OperationScopeTags,
		},
		UnauthOperationTagValues:    o.UnauthOperationTagValues,
		GenericWrapperTypes:         o.GenericWrapperTypes,
		ResponseMessageSortMode:     o.ResponseMessageSortMode,
		ParseModels:                 o.ParseModels,
		ExcludeDeprecatedOperations: o.ExcludeDeprecatedOperations,
		ExcludeDeprecatedParams:     o.ExcludeDeprecatedParams,
		SortApisByPath:              o.SortApisByPath,
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find looks for FileName in dir and its parents. It returns "" when there
// is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, FileName)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Validate rejects option values a parse run cannot work with.
func (c *Config) Validate() error {
	switch c.ResponseMessageSortMode {
	case "", doclet.SortCodeAsc, doclet.SortCodeDesc, doclet.SortAsAppears:
	default:
		return fmt.Errorf("%w: unknown response message sort mode %q", doclet.ErrConfigurationConflict, c.ResponseMessageSortMode)
	}

	registered := make(map[string]bool)
	if c.Authorizations != nil && c.Authorizations.OAuth2 != nil {
		for _, s := range c.Authorizations.OAuth2.Scopes {
			if s.Scope == "" {
				return fmt.Errorf("%w: oauth2 scope without a name", doclet.ErrConfigurationConflict)
			}
			registered[s.Scope] = true
		}
	}
	for _, scope := range c.AuthOperationScopes {
		if !registered[scope] {
			return fmt.Errorf("%w: default operation scope %q is not a registered oauth2 scope", doclet.ErrConfigurationConflict, scope)
		}
	}
	if len(c.JaxRsPackages) == 0 {
		return fmt.Errorf("%w: no JAX-RS packages configured", doclet.ErrConfigurationConflict)
	}
	return nil
}

// Options converts the configuration into the options of a parse run.
func (c *Config) Options() *doclet.Options {
	return &doclet.Options{
		JaxRsPackages:            c.JaxRsPackages,
		FormDataParamAnnotations: c.Annotations.FormDataParam,
		ExcludeParamAnnotations:  c.Annotations.ExcludeParam,
		RequiredParamAnnotations: c.Annotations.RequiredParam,
		OptionalParamAnnotations: c.Annotations.OptionalParam,
		ParamMinValueAnnotations: c.Annotations.ParamMinValue,
		ParamMaxValueAnnotations: c.Annotations.ParamMaxValue,
		DeprecatedAnnotations:    c.Annotations.Deprecated,
		JsonViewAnnotations:      c.Annotations.JsonView,

		ExcludeOperationTags:    c.Tags.ExcludeOperation,
		ExcludeParamsTags:       c.Tags.ExcludeParams,
		RequiredParamsTags:      c.Tags.RequiredParams,
		OptionalParamsTags:      c.Tags.OptionalParams,
		CsvParamsTags:           c.Tags.CsvParams,
		ParamsMinValueTags:      c.Tags.ParamsMinValue,
		ParamsMaxValueTags:      c.Tags.ParamsMaxValue,
		ParamsDefaultValueTags:  c.Tags.ParamsDefaultValue,
		ParamsNameTags:          c.Tags.ParamsName,
		ResponseMessageTags:     c.Tags.ResponseMessage,
		ResponseTypeTags:        c.Tags.ResponseType,
		InputTypeTags:           c.Tags.InputType,
		DefaultErrorTypeTags:    c.Tags.DefaultErrorType,
		OperationNotesTags:      c.Tags.OperationNotes,
		OperationSummaryTags:    c.Tags.OperationSummary,
		ResourceTags:            c.Tags.Resource,
		ResourcePriorityTags:    c.Tags.ResourcePriority,
		ResourceDescriptionTags: c.Tags.ResourceDescription,
		ApiDescriptionTags:      c.Tags.ApiDescription,
		DeprecatedTags:          c.Tags.Deprecated,
		UnauthOperationTags:     c.Tags.UnauthOperation,
		AuthOperationTags:       c.Tags.AuthOperation,
		OperationScopeTags:      c.Tags.OperationScope,

		UnauthOperationTagValues: c.UnauthOperationTagValues,
		GenericWrapperTypes:      c.GenericWrapperTypes,

		ResponseMessageSortMode:     c.ResponseMessageSortMode,
		ParseModels:                 c.ParseModels,
		ExcludeDeprecatedOperations: c.ExcludeDeprecatedOperations,
		ExcludeDeprecatedParams:     c.ExcludeDeprecatedParams,
		SortApisByPath:              c.SortApisByPath,

		APIAuthorizations:   c.Authorizations,
		AuthOperationScopes: c.AuthOperationScopes,
		Variables:           c.Variables,
	}
}
