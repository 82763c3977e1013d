package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"scrivano/internal/adapters/export"
	"scrivano/internal/adapters/filesystem"
	"scrivano/internal/application/commands"
	"scrivano/internal/ports"
)

var (
	exportFormat    string
	exportNoHistory bool
	exportOut       string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the document to a file",
	Long: `Export the document as JSON, a Markdown manuscript with YAML front
matter, or a plain-text scene summary. The file is named after the title
and the current time.

Examples:
  scrivano-cli export
  scrivano-cli export --format markdown --out ~/Desktop
  scrivano-cli export --format json --no-history`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		dir := cfg.ExportDir
		if cmd.Flags().Changed("out") {
			dir = exportOut
		}

		opts := ports.ExportOptions{
			Format:         format,
			IncludeHistory: !exportNoHistory,
			Dir:            dir,
		}
		result, err := commands.NewExportCommand(GetManager(), filesystem.NewExporter(), opts).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "json, markdown or text")
	exportCmd.Flags().BoolVar(&exportNoHistory, "no-history", false, "leave version history out of JSON exports")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory (default from config)")
}
