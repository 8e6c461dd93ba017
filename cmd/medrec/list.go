package main

import (
	"github.com/matsen/medrec/internal/medicine"
	"github.com/spf13/cobra"
)

var (
	listCategory string
	listLimit    int
)

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only list medicines in this category")
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", DefaultListLimit, "Maximum number of results (0 for all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List medicines in the catalogue",
	Long: `List medicines from the query cache in catalogue order.

Medicines without a category are listed under "Unknown".
Run 'medrec rebuild' first if the catalogue was edited by hand.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	var meds []medicine.Medicine
	var err error
	if listCategory != "" {
		meds, err = db.ListByCategory(listCategory, listLimit)
	} else {
		meds, err = db.ListAll(listLimit)
	}
	if err != nil {
		exitWithError(ExitError, "listing medicines: %v", err)
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
