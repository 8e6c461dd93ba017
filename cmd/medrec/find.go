package main

import (
	"strings"

	"github.com/matsen/medrec/internal/medicine"
	"github.com/spf13/cobra"
)

var findLimit int

func init() {
	findCmd.Flags().IntVarP(&findLimit, "limit", "l", DefaultListLimit, "Maximum number of results")
	rootCmd.AddCommand(findCmd)
}

var findCmd = &cobra.Command{
	Use:   "find <keywords...>",
	Short: "Keyword search over names, uses and components",
	Long: `Full-text keyword search over medicine names, uses and components.

Every keyword must match. Results are in catalogue order. For ranked,
similarity-based matching use 'medrec search'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	if findLimit < 1 {
		exitWithError(ExitError, "--limit must be at least 1")
	}

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	meds, err := db.SearchNames(strings.Join(args, " "), findLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}
	if meds == nil {
		meds = []medicine.Medicine{}
	}

	if humanOutput {
		printMedicineListHuman(meds)
	} else {
		outputJSON(MedicineListResponse{Medicines: meds, Total: len(meds)})
	}
	return nil
}
