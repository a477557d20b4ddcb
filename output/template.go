package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/dhamidi/doclet/doclet"
)

// TemplateData is the value a user template is executed with.
type TemplateData struct {
	Header       Header
	Declarations []*doclet.Declaration
	RunID        string
}

// funcMap holds the sprig functions plus the doclet helpers.
func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["resourceName"] = doclet.ResourceName
	fm["required"] = func(b *bool) bool { return b != nil && *b }
	return fm
}

// ParseTemplate reads a text/template file.
func ParseTemplate(path string) (*template.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewTemplate(filepath.Base(path), string(data))
}

// NewTemplate parses text as a template named name.
func NewTemplate(name, text string) (*template.Template, error) {
	t, err := template.New(name).Funcs(funcMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return t, nil
}

// RenderTemplate executes t over the declarations in listing order.
func RenderTemplate(w io.Writer, t *template.Template, h Header, runID string, decls doclet.Declarations) error {
	data := TemplateData{
		Header:       h,
		Declarations: decls.Sorted(),
		RunID:        runID,
	}
	if err := t.Execute(w, data); err != nil {
		return fmt.Errorf("execute template %s: %w", t.Name(), err)
	}
	return nil
}
