package main

import (
	"github.com/matsen/medrec/internal/curate"
	"github.com/matsen/medrec/internal/logging"
	"github.com/spf13/cobra"
)

var enrichDryRun bool

func init() {
	enrichCmd.Flags().BoolVar(&enrichDryRun, "dry-run", false, "Show what would change without writing")
	rootCmd.AddCommand(enrichCmd)
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Standardize uses, merge duplicates and fill categories",
	Long: `Clean up the catalogue in place.

Steps, in order:
  1. Rewrite common synonyms in uses (e.g. "heartburn" becomes "acid reflux").
  2. Merge medicines that share a name into the first entry.
  3. Infer missing categories from uses.`,
	Args: cobra.NoArgs,
	RunE: runEnrich,
}

// EnrichResponse is the response for the enrich command.
type EnrichResponse struct {
	curate.Result
	Total  int  `json:"total_medicines"`
	DryRun bool `json:"dry_run,omitempty"`
}

func runEnrich(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	meds := mustReadCatalogue(repoRoot)

	enriched, res := curate.Enrich(meds)
	logging.Debug().
		Int("standardized", res.UsesStandardized).
		Int("duplicates", len(res.Duplicates)).
		Int("categories", res.CategoriesAdded).
		Msg("catalogue enriched")

	if res.Changed && !enrichDryRun {
		mustWriteCatalogue(repoRoot, enriched)
	}

	if humanOutput {
		if enrichDryRun {
			outputHuman("Dry run: no files modified\n\n")
		}
		outputHuman("Uses standardized:  %d\n", res.UsesStandardized)
		outputHuman("Duplicates merged:  %d\n", len(res.Duplicates))
		outputHuman("Categories added:   %d\n", res.CategoriesAdded)
		outputHuman("Total medicines:    %d\n", len(enriched))
	} else {
		outputJSON(EnrichResponse{Result: res, Total: len(enriched), DryRun: enrichDryRun})
	}
	return nil
}
