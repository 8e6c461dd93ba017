package main

import (
	"strings"

	"github.com/matsen/medrec/internal/medicine"
	"github.com/spf13/cobra"
)

var searchTopN int

func init() {
	searchCmd.Flags().IntVarP(&searchTopN, "top", "n", 0, "Number of results (default from config)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <text...>",
	Short: "Rank medicines against free text",
	Long: `Rank every medicine by similarity to a free-text description of uses
and components, e.g.:

  medrec search pain relief fever

Words outside the trained vocabulary are ignored. Medicines with no
similarity at all still fill the result list, in catalogue order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// SearchResponse is the response for the search command.
type SearchResponse struct {
	Query   string            `json:"query"`
	Results []RecommendResult `json:"results"`
	Total   int               `json:"total"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	svc, _ := mustTrainService(repoRoot)

	query := strings.Join(args, " ")
	recs, err := svc.RecommendText(query, resolveTopN(searchTopN, cfg))
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	results := buildRecommendResults(medicine.Medicine{}, recs)

	if humanOutput {
		outputHuman("Results for %q:\n\n", query)
		printRecommendResultsHuman(results, false)
	} else {
		outputJSON(SearchResponse{Query: query, Results: results, Total: len(results)})
	}
	return nil
}
