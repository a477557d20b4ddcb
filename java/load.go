package java

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DecodeClassModels reads class models from JSON. The input is either a
// single class object or an array of them.
func DecodeClassModels(r io.Reader) ([]*ClassModel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var models []*ClassModel
	if data[0] == '[' {
		if err := json.Unmarshal(data, &models); err != nil {
			return nil, fmt.Errorf("decode class models: %w", err)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		for {
			var model ClassModel
			if err := dec.Decode(&model); err == io.EOF {
				break
			} else if err != nil {
				return nil, fmt.Errorf("decode class model: %w", err)
			}
			models = append(models, &model)
		}
	}

	for _, m := range models {
		normalizeClassModel(m)
	}
	return models, nil
}

// LoadClassModels loads class models from a JSON file or from every .json
// file below a directory, then fixes up inner class references across files.
func LoadClassModels(path string) ([]*ClassModel, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var files []string
	if info.IsDir() {
		err := filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && filepath.Ext(p) == ".json" {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
		sort.Strings(files)
	} else {
		files = []string{path}
	}

	var all []*ClassModel
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", file, err)
		}
		models, err := DecodeClassModels(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		all = append(all, models...)
	}

	ResolveInnerClassReferences(all)
	return all, nil
}

func normalizeClassModel(m *ClassModel) {
	if m.SimpleName == "" {
		m.SimpleName = extractSimpleName(m.Name)
	}
	if m.Package == "" {
		if i := strings.LastIndex(m.Name, "."); i >= 0 {
			m.Package = m.Name[:i]
		}
	}
	if m.Kind == "" {
		m.Kind = ClassKindClass
	}
	normalizeAnnotations(m.Annotations)
	for i := range m.Fields {
		normalizeAnnotations(m.Fields[i].Annotations)
	}
	for i := range m.Methods {
		normalizeAnnotations(m.Methods[i].Annotations)
		for j := range m.Methods[i].Parameters {
			normalizeAnnotations(m.Methods[i].Parameters[j].Annotations)
		}
	}
}

// normalizeAnnotations unquotes string literals kept verbatim by the source
// reader, so `@Path("/x")` yields /x.
func normalizeAnnotations(anns []AnnotationModel) {
	for i := range anns {
		for k, v := range anns[i].Values {
			anns[i].Values[k] = normalizeElementValue(v)
		}
	}
}

func normalizeElementValue(v any) any {
	switch val := v.(type) {
	case string:
		return Unquote(val)
	case []any:
		for i := range val {
			val[i] = normalizeElementValue(val[i])
		}
		return val
	}
	return v
}
