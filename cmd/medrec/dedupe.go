package main

import (
	"strconv"
	"strings"

	"github.com/matsen/medrec/internal/curate"
	"github.com/spf13/cobra"
)

var dedupeDryRun bool

func init() {
	dedupeCmd.Flags().BoolVar(&dedupeDryRun, "dry-run", false, "Show duplicates without making changes")
	rootCmd.AddCommand(dedupeCmd)
}

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Merge medicines that share a name",
	Long: `Merge medicines whose names match ignoring case.

The first entry is kept. Uses and components from later entries are added
to it, and a missing category or description is filled from them.

Examples:
  medrec dedupe --dry-run
  medrec dedupe`,
	Args: cobra.NoArgs,
	RunE: runDedupe,
}

// DedupeResult is the response for the dedupe command.
type DedupeResult struct {
	DryRun     bool                    `json:"dry_run"`
	Groups     []curate.DuplicateGroup `json:"groups"`
	TotalDupes int                     `json:"total_duplicates"`
	Total      int                     `json:"total_medicines"`
}

func runDedupe(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	meds := mustReadCatalogue(repoRoot)

	merged, groups := curate.MergeDuplicates(meds)
	if groups == nil {
		groups = []curate.DuplicateGroup{}
	}

	totalDupes := 0
	for _, g := range groups {
		totalDupes += len(g.Merged)
	}

	if totalDupes > 0 && !dedupeDryRun {
		mustWriteCatalogue(repoRoot, merged)
	}

	if !humanOutput {
		outputJSON(DedupeResult{DryRun: dedupeDryRun, Groups: groups, TotalDupes: totalDupes, Total: len(merged)})
		return nil
	}

	if len(groups) == 0 {
		outputHuman("No duplicates found.\n")
		return nil
	}
	verb := "Merged"
	if dedupeDryRun {
		verb = "Would merge"
	}
	outputHuman("%s %d duplicate groups (%d entries):\n\n", verb, len(groups), totalDupes)
	for _, g := range groups {
		outputHuman("%s\n", g.Name)
		outputHuman("  Keep:  line %d\n", g.Primary+1)
		outputHuman("  Merge: %s\n", formatLines(g.Merged))
	}
	return nil
}

// formatLines renders zero-based positions as one-based line numbers.
func formatLines(positions []int) string {
	lines := make([]string, len(positions))
	for i, p := range positions {
		lines[i] = strconv.Itoa(p + 1)
	}
	return strings.Join(lines, ", ")
}
