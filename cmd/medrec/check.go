package main

import (
	"os"

	"github.com/matsen/medrec/internal/validation"
	"github.com/spf13/cobra"
)

// maxIssuesShown caps each issue list in human output.
const maxIssuesShown = 5

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check catalogue quality",
	Long: `Check the catalogue for structural errors, duplicate names and medicines
without uses or components, and compute a quality score from 0 to 100.

Exits with code 3 when structural errors are found.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	meds := mustReadCatalogue(repoRoot)

	report := validation.BuildReport(meds)

	if humanOutput {
		printReportHuman(report)
	} else {
		outputJSON(report)
	}

	if !report.StructureValid {
		os.Exit(ExitDataError)
	}
	return nil
}

func printReportHuman(r *validation.Report) {
	outputHuman("Total medicines: %d\n", r.TotalMedicines)
	outputHuman("Quality score:   %.1f/100\n", r.QualityScore)

	if r.StructureValid {
		outputHuman("\nStructure: OK\n")
	} else {
		outputHuman("\nStructure errors: %d\n", len(r.StructureErrors))
		for i, e := range r.StructureErrors {
			if i == maxIssuesShown {
				outputHuman("  ... and %d more\n", len(r.StructureErrors)-maxIssuesShown)
				break
			}
			outputHuman("  - %s\n", e)
		}
	}

	if len(r.Duplicates) == 0 {
		outputHuman("\nDuplicates: none\n")
	} else {
		outputHuman("\nDuplicates: %d\n", len(r.Duplicates))
		for i, d := range r.Duplicates {
			if i == maxIssuesShown {
				outputHuman("  ... and %d more\n", len(r.Duplicates)-maxIssuesShown)
				break
			}
			outputHuman("  - '%s': %d entries\n", d.Name, d.Count)
		}
	}

	c := r.Completeness
	outputHuman("\nCompleteness:\n")
	outputHuman("  Has uses:       %d\n", c.HasUses)
	outputHuman("  Has components: %d\n", c.HasComponents)
	outputHuman("  Has both:       %d\n", c.HasBoth)
	outputHuman("  Has neither:    %d\n", c.HasNeither)
	for i, e := range c.EmptyEntries {
		if i == maxIssuesShown {
			outputHuman("    ... and %d more\n", len(c.EmptyEntries)-maxIssuesShown)
			break
		}
		outputHuman("    - %s (index %d)\n", e.Name, e.Index)
	}
}
