// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/markitdown-gateway/internal/convert"
	"github.com/pdiddy/markitdown-gateway/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert local files to Markdown without the HTTP server",
	Long: `Convert runs the markitdown engine against local files directly,
writing <name>.md into the output directory with YAML frontmatter.
Useful for smoke-testing the engine configuration the server will use.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadGatewayConfig().Conversion
		if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
			cfg.Backend = types.ConversionBackend(backend)
		}

		conv, err := convert.NewConverter(cfg)
		if err != nil {
			return err
		}

		outDir, _ := cmd.Flags().GetString("out-dir")
		result := convert.ConvertPaths(cmd.Context(), conv, args, outDir, os.Stdout)
		if result.HasFailures() {
			return fmt.Errorf("%d of %d files failed", result.Failed, result.Total())
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().String("backend", "", "conversion backend: cli or container (overrides conversion.backend)")
	convertCmd.Flags().String("out-dir", "markdown", "directory for converted Markdown files")

	rootCmd.AddCommand(convertCmd)
}
