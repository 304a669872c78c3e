package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
)

func openAPICmd(flags *globalFlags) *cobra.Command {
	var (
		output      string
		title       string
		description string
		apiVersion  string
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Generate an OpenAPI 3.1 description",
		Long: `Describe every manifest route as a GET operation. Path parameters come
from the pattern; query parameters come from the route's query schema.

Examples:
  vroute openapi                          # Print to stdout
  vroute openapi -o docs/api.json         # Write next to the manifest
  vroute openapi --title "My API"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, r, err := flags.buildRouter(cmd)
			if err != nil {
				return err
			}

			if title == "" {
				title = m.Name
			}
			spec, err := router.NewOpenAPIGenerator(r, router.OpenAPIInfo{
				Title:       title,
				Description: description,
				Version:     apiVersion,
			}).Generate()
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(append(spec, '\n'))
				return err
			}
			if !filepath.IsAbs(output) && m.Dir() != "" {
				output = filepath.Join(m.Dir(), output)
			}
			if err := os.WriteFile(output, append(spec, '\n'), 0o644); err != nil {
				return errors.Newf(errors.CategoryCLI, "write %s: %v", output, err)
			}
			success(cmd.OutOrStdout(), "Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&title, "title", "", "API title (default: manifest name)")
	cmd.Flags().StringVar(&description, "description", "", "API description")
	cmd.Flags().StringVar(&apiVersion, "api-version", "1.0.0", "API version")

	return cmd
}
