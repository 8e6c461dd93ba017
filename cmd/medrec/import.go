package main

import (
	"fmt"

	"github.com/matsen/medrec/internal/logging"
	"github.com/matsen/medrec/internal/medicine"
	"github.com/matsen/medrec/internal/storage"
	"github.com/matsen/medrec/internal/validation"
	"github.com/spf13/cobra"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import medicines from a catalogue file",
	Long: `Import medicines from a catalogue file.

Usage:
  medrec import medicines.json
  medrec import medicines.jsonl --dry-run

Files ending in .jsonl hold one medicine per line. Any other file is read
as a JSON document of the form {"medicines": [...]}.

Invalid records are reported and skipped. Medicines whose name (ignoring
case) is already in the catalogue are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResult represents the result of an import operation.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Invalid  int      `json:"invalid"`
	Total    int      `json:"total"`
	DryRun   bool     `json:"dry_run,omitempty"`
	Errors   []string `json:"errors"`
}

func runImport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	incoming, err := storage.ReadCatalog(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	valid, errs := filterValid(incoming)
	if len(valid) == 0 && len(errs) > 0 {
		exitWithError(ExitDataError, "no valid medicines in %s: %s", args[0], errs[0])
	}

	existing := mustReadCatalogue(repoRoot)
	merged, added, skipped := storage.MergeNew(existing, valid)

	logging.Debug().
		Int("incoming", len(incoming)).
		Int("invalid", len(errs)).
		Int("added", added).
		Int("skipped", skipped).
		Msg("import merged")

	if !importDryRun && added > 0 {
		mustWriteCatalogue(repoRoot, merged)
	}

	result := ImportResult{
		Imported: added,
		Skipped:  skipped,
		Invalid:  len(errs),
		Total:    len(merged),
		DryRun:   importDryRun,
		Errors:   errs,
	}

	if humanOutput {
		verb := "Imported"
		if importDryRun {
			verb = "Would import"
		}
		outputHuman("%s %d medicines (%d skipped, %d invalid)\n", verb, added, skipped, len(errs))
		for _, e := range errs {
			outputHuman("  - %s\n", e)
		}
	} else {
		outputJSON(result)
	}
	return nil
}

// filterValid splits records into valid medicines and messages for the
// rejected ones.
func filterValid(meds []medicine.Medicine) ([]medicine.Medicine, []string) {
	valid := make([]medicine.Medicine, 0, len(meds))
	errs := []string{}
	for i, m := range meds {
		if err := validation.ValidateMedicine(m); err != nil {
			label := m.Name
			if label == "" {
				label = fmt.Sprintf("record %d", i+1)
			}
			errs = append(errs, fmt.Sprintf("%s: %v", label, err))
			continue
		}
		valid = append(valid, m)
	}
	return valid, errs
}
