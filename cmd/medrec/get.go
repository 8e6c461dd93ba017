package main

import (
	"strings"

	"github.com/matsen/medrec/internal/medicine"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a medicine",
	Long: `Show a medicine by name.

Names match case-insensitively. If no name matches exactly, the first
medicine in catalogue order whose name contains the query is shown.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

// GetResponse is the response for the get command.
type GetResponse struct {
	Medicine medicine.Medicine `json:"medicine"`
	Position int               `json:"position"`
	Query    string            `json:"query"`
}

func runGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	svc := mustLoadService(repoRoot)

	query := strings.Join(args, " ")
	pos, m := mustResolveMedicine(svc, query)

	if humanOutput {
		printMedicineHuman(m)
	} else {
		outputJSON(GetResponse{Medicine: m, Position: pos, Query: query})
	}
	return nil
}
