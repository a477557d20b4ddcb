package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dhamidi/doclet/config"
	"github.com/dhamidi/doclet/doclet"
	"github.com/dhamidi/doclet/doclet/modelparse"
	"github.com/dhamidi/doclet/doclet/translate"
	"github.com/dhamidi/doclet/java"
	"github.com/dhamidi/doclet/output"
)

// runFlags are the input flags shared by every command that resolves
// declarations.
type runFlags struct {
	configPath  string
	typeClasses []string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "configuration file (default: "+config.FileName+" in the working directory or a parent)")
	cmd.Flags().StringSliceVar(&f.typeClasses, "type-classes", nil, "extra class model files usable as generic response type arguments")
}

// run is one resolution of a set of class model files.
type run struct {
	id     string
	config *config.Config
	decls  doclet.Declarations
}

func (r *run) header() output.Header {
	return output.Header{
		APIVersion:     r.config.APIVersion,
		SwaggerVersion: r.config.SwaggerVersion,
		BasePath:       r.config.BasePath,
		Authorizations: r.config.Authorizations,
	}
}

func (f *runFlags) resolve(inputs []string) (*run, error) {
	r := &run{id: uuid.NewString()}

	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}
	r.config = cfg

	classes, err := loadClasses(inputs)
	if err != nil {
		return nil, err
	}
	typeClasses, err := loadClasses(f.typeClasses)
	if err != nil {
		return nil, err
	}
	log.Infof("[%s] loaded %d classes and %d type classes", r.id, len(classes), len(typeClasses))

	opts := cfg.Options()
	known := java.NewClassSet(append(append([]*java.ClassModel(nil), classes...), typeClasses...)...)
	tr := translate.New(known)
	r.decls, err = doclet.Parse(doclet.Config{
		Options:     opts,
		Translator:  tr,
		Models:      modelparse.New(opts, tr, known),
		Classes:     classes,
		TypeClasses: typeClasses,
	})
	if err != nil {
		return nil, fmt.Errorf("[%s] %w", r.id, err)
	}
	log.Infof("[%s] resolved %d resource declarations", r.id, len(r.decls))
	return r, nil
}

func (f *runFlags) loadConfig() (*config.Config, error) {
	path := f.configPath
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return nil, fmt.Errorf("find configuration: %w", err)
		}
		path = found
	}
	if path == "" {
		log.Debugf("no %s found, using defaults", config.FileName)
		return config.Default(), nil
	}
	log.Debugf("loading configuration from %s", path)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

func loadClasses(paths []string) ([]*java.ClassModel, error) {
	var classes []*java.ClassModel
	for _, path := range paths {
		loaded, err := java.LoadClassModels(path)
		if err != nil {
			return nil, fmt.Errorf("load class models from %s: %w", path, err)
		}
		classes = append(classes, loaded...)
	}
	return classes, nil
}
