// Package output renders resolved declarations: Swagger 1.2 documents, an
// OpenAPI 3 conversion, line summaries and user templates.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/doclet/doclet"
)

// ListingFile is the name of the resource listing written by WriteSwagger.
const ListingFile = "service.json"

// Header carries the document fields shared by the listing and every
// declaration.
type Header struct {
	APIVersion     string
	SwaggerVersion string
	BasePath       string
	Authorizations *doclet.Authorizations
}

// ResourceListing is the Swagger 1.2 entry document.
type ResourceListing struct {
	APIVersion     string                 `json:"apiVersion"`
	SwaggerVersion string                 `json:"swaggerVersion"`
	BasePath       string                 `json:"basePath,omitempty"`
	Apis           []ResourceListingAPI   `json:"apis"`
	Authorizations *doclet.Authorizations `json:"authorizations,omitempty"`
}

type ResourceListingAPI struct {
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`

	// File is where the declaration document is written.
	File string `json:"-"`
}

// ApiDeclaration is the Swagger 1.2 document of one resource path.
type ApiDeclaration struct {
	APIVersion     string                  `json:"apiVersion"`
	SwaggerVersion string                  `json:"swaggerVersion"`
	BasePath       string                  `json:"basePath,omitempty"`
	ResourcePath   string                  `json:"resourcePath"`
	Apis           []*doclet.Api           `json:"apis"`
	Models         map[string]doclet.Model `json:"models,omitempty"`
}

// BuildListing lists the declarations ordered by priority, then resource
// path. Positions follow that order.
func BuildListing(h Header, decls doclet.Declarations) (*ResourceListing, []*ApiDeclaration) {
	listing := &ResourceListing{
		APIVersion:     h.APIVersion,
		SwaggerVersion: h.SwaggerVersion,
		BasePath:       h.BasePath,
		Apis:           []ResourceListingAPI{},
		Authorizations: h.Authorizations,
	}
	var docs []*ApiDeclaration
	for i, decl := range decls.Sorted() {
		name := doclet.ResourceName(decl.ResourcePath)
		listing.Apis = append(listing.Apis, ResourceListingAPI{
			Path:        "/" + name + ".{format}",
			Description: decl.Description,
			Position:    i,
			File:        name + ".json",
		})
		docs = append(docs, &ApiDeclaration{
			APIVersion:     h.APIVersion,
			SwaggerVersion: h.SwaggerVersion,
			BasePath:       h.BasePath,
			ResourcePath:   decl.ResourcePath,
			Apis:           decl.Apis,
			Models:         decl.Models,
		})
	}
	return listing, docs
}

// WriteSwagger writes the resource listing and one document per
// declaration into dir, creating it if needed. It returns the written
// paths.
func WriteSwagger(dir string, h Header, decls doclet.Declarations) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	listing, docs := BuildListing(h, decls)
	var written []string

	path := filepath.Join(dir, ListingFile)
	if err := writeJSON(path, listing); err != nil {
		return written, err
	}
	written = append(written, path)

	for i, doc := range docs {
		path := filepath.Join(dir, listing.Apis[i].File)
		if err := writeJSON(path, doc); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
