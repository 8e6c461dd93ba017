package main

import (
	"github.com/matsen/medrec/internal/recommend"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare <name> <name>",
	Short: "Show how similar two medicines are",
	Long: `Show the similarity score of two medicines and the uses and components
they share.

Names resolve the same way as in 'get'. Quote names that contain spaces.

Examples:
  medrec compare aspirin ibuprofen
  medrec compare "vitamin d" calcium --human`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

// CompareResponse is the response for the compare command.
type CompareResponse struct {
	First            string   `json:"first"`
	Second           string   `json:"second"`
	Score            float64  `json:"score"`
	SharedUses       []string `json:"shared_uses"`
	SharedComponents []string `json:"shared_components"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	svc, _ := mustTrainService(repoRoot)

	i, first := mustResolveMedicine(svc, args[0])
	j, second := mustResolveMedicine(svc, args[1])

	score, err := svc.Similarity(i, j)
	if err != nil {
		exitWithError(ExitError, "computing similarity: %v", err)
	}
	why := recommend.Explain(first, second)

	resp := CompareResponse{
		First:            first.Name,
		Second:           second.Name,
		Score:            score,
		SharedUses:       nonNil(why.SharedUses),
		SharedComponents: nonNil(why.SharedComponents),
	}

	if humanOutput {
		outputHuman("%s vs %s: %.3f\n", resp.First, resp.Second, resp.Score)
		outputHuman("  Shared uses:       %s\n", formatList(resp.SharedUses))
		outputHuman("  Shared components: %s\n", formatList(resp.SharedComponents))
	} else {
		outputJSON(resp)
	}
	return nil
}
