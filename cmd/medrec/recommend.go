package main

import (
	"strings"

	"github.com/matsen/medrec/internal/config"
	"github.com/matsen/medrec/internal/medicine"
	"github.com/matsen/medrec/internal/recommend"
	"github.com/spf13/cobra"
)

var (
	recommendTopN        int
	recommendIncludeSelf bool
)

func init() {
	recommendCmd.Flags().IntVarP(&recommendTopN, "top", "n", 0, "Number of recommendations (default from config)")
	recommendCmd.Flags().BoolVar(&recommendIncludeSelf, "include-self", false, "Keep the queried medicine in the results")
	rootCmd.AddCommand(recommendCmd)
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <name>",
	Short: "Recommend medicines similar to a given one",
	Long: `Recommend medicines with similar uses and components.

Medicines are compared by cosine similarity of tf-idf weighted uses and
components. Each result lists the uses and components it shares with the
queried medicine.

Usage:
  medrec recommend aspirin
  medrec recommend "vitamin c" -n 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

// RecommendSource identifies the queried medicine.
type RecommendSource struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// RecommendResult is one recommended medicine with its shared features.
type RecommendResult struct {
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Score            float64  `json:"score"`
	Uses             []string `json:"uses"`
	Components       []string `json:"components"`
	SharedUses       []string `json:"shared_uses,omitempty"`
	SharedComponents []string `json:"shared_components,omitempty"`
}

// RecommendResponse is the response for the recommend command.
type RecommendResponse struct {
	Source          RecommendSource   `json:"source"`
	Recommendations []RecommendResult `json:"recommendations"`
	Total           int               `json:"total"`
}

func runRecommend(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	svc, _ := mustTrainService(repoRoot)

	query := strings.Join(args, " ")
	pos, source := mustResolveMedicine(svc, query)

	includeSelf := cfg.IncludeSelf
	if cmd.Flags().Changed("include-self") {
		includeSelf = recommendIncludeSelf
	}

	recs, err := svc.Recommend(query, resolveTopN(recommendTopN, cfg), !includeSelf)
	if err != nil {
		exitWithError(ExitError, "recommending: %v", err)
	}

	results := buildRecommendResults(source, recs)

	if humanOutput {
		outputHuman("Medicines similar to %s:\n\n", source.Name)
		printRecommendResultsHuman(results, true)
	} else {
		outputJSON(RecommendResponse{
			Source:          RecommendSource{Name: source.Name, Position: pos},
			Recommendations: results,
			Total:           len(results),
		})
	}
	return nil
}

// resolveTopN returns the requested count, or the configured default when
// the flag is not positive.
func resolveTopN(flagValue int, cfg *config.Config) int {
	if flagValue > 0 {
		return flagValue
	}
	if cfg != nil && cfg.DefaultTopN > 0 {
		return cfg.DefaultTopN
	}
	return recommend.DefaultTopN
}

// buildRecommendResults converts engine results, explaining each against source.
func buildRecommendResults(source medicine.Medicine, recs []recommend.Recommendation) []RecommendResult {
	results := make([]RecommendResult, len(recs))
	for i, r := range recs {
		why := recommend.Explain(source, r.Medicine)
		results[i] = RecommendResult{
			Name:             r.Medicine.Name,
			Category:         r.Medicine.CategoryOrUnknown(),
			Score:            r.Score,
			Uses:             nonNil(r.Medicine.Uses),
			Components:       nonNil(r.Medicine.Components),
			SharedUses:       why.SharedUses,
			SharedComponents: why.SharedComponents,
		}
	}
	return results
}

// printRecommendResultsHuman prints ranked results; withShared adds the
// features each result shares with the query.
func printRecommendResultsHuman(results []RecommendResult, withShared bool) {
	if len(results) == 0 {
		outputHuman("No recommendations found\n")
		return
	}
	for i, r := range results {
		outputHuman("%d. [%.3f] %s (%s)\n", i+1, r.Score, r.Name, r.Category)
		outputHuman("   Uses:       %s\n", wrapText(formatList(r.Uses), TextWrapWidth, "               "))
		outputHuman("   Components: %s\n", wrapText(formatList(r.Components), TextWrapWidth, "               "))
		if withShared && len(r.SharedUses)+len(r.SharedComponents) > 0 {
			shared := append(append([]string{}, r.SharedUses...), r.SharedComponents...)
			outputHuman("   Shared:     %s\n", wrapText(formatList(shared), TextWrapWidth, "               "))
		}
		outputHuman("\n")
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
