package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"

	"github.com/dhamidi/doclet/output"
)

func newGenerateCmd() *cobra.Command {
	var (
		flags        runFlags
		outDir       string
		outFormat    string
		templatePath string
		title        string
	)

	cmd := &cobra.Command{
		Use:   "generate <class-models>...",
		Short: "Write API documentation for the resource classes in the given class model files",
		Long: `Resolve the JAX-RS resource classes described by the class model files
(JSON files or directories of them) and write the result.

Formats:
  swagger   service.json plus one declaration per resource path (default)
  openapi3  a single openapi.json document`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.resolve(args)
			if err != nil {
				return err
			}

			if templatePath != "" {
				tmpl, err := output.ParseTemplate(templatePath)
				if err != nil {
					return err
				}
				return output.RenderTemplate(cmd.OutOrStdout(), tmpl, r.header(), r.id, r.decls)
			}

			switch outFormat {
			case "swagger":
				written, err := output.WriteSwagger(outDir, r.header(), r.decls)
				if err != nil {
					return err
				}
				for _, path := range written {
					log.Debugf("[%s] wrote %s", r.id, path)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files to %s\n", len(written), outDir)
			case "openapi3":
				info := &openapi3.Info{Title: title, Version: r.config.APIVersion}
				spec, err := output.ToOpenAPI(info, r.header(), r.decls)
				if err != nil {
					return fmt.Errorf("convert to openapi3: %w", err)
				}
				data, err := json.MarshalIndent(spec, "", "  ")
				if err != nil {
					return fmt.Errorf("encode openapi3: %w", err)
				}
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
				path := filepath.Join(outDir, "openapi.json")
				if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			default:
				return fmt.Errorf("unknown format: %s (expected swagger or openapi3)", outFormat)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outDir, "out", "o", "apidocs", "output directory")
	cmd.Flags().StringVarP(&outFormat, "format", "f", "swagger", "output format (swagger, openapi3)")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "render this text/template to stdout instead of writing files")
	cmd.Flags().StringVar(&title, "title", "API", "document title for openapi3 output")

	return cmd
}
