package main

import (
	"os"
	"strings"

	"github.com/matsen/medrec/internal/storage"
	"github.com/spf13/cobra"
)

// Export formats
const (
	exportFormatJSON  = "json"
	exportFormatJSONL = "jsonl"
)

var (
	exportFormat string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", exportFormatJSON, "Output format (json, jsonl)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalogue",
	Long: `Export the catalogue.

The json format is a single document of the form {"medicines": [...]},
which import reads back. Output is always the catalogue itself, so
--human has no effect.

Examples:
  medrec export > medicines.json
  medrec export --format jsonl -o backup.jsonl`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	if format != exportFormatJSON && format != exportFormatJSONL {
		exitWithError(ExitError, "invalid format: %s (valid: json, jsonl)", exportFormat)
	}

	repoRoot := mustFindRepository()
	meds := mustReadCatalogue(repoRoot)

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			exitWithError(ExitError, "creating %s: %v", exportOutput, err)
		}
		defer f.Close()
		out = f
	}

	var err error
	if format == exportFormatJSONL {
		err = storage.EncodeJSONL(out, meds)
	} else {
		err = storage.EncodeDocument(out, meds)
	}
	if err != nil {
		exitWithError(ExitError, "exporting catalogue: %v", err)
	}
	return nil
}
