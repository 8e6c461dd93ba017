package main

import (
	"github.com/matsen/medrec/internal/recommend"
	"github.com/spf13/cobra"
)

var trainTerms bool

func init() {
	trainCmd.Flags().BoolVar(&trainTerms, "terms", false, "Include the vocabulary terms and their idf weights in the output")
	rootCmd.AddCommand(trainCmd)
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the model and report its size",
	Long: `Fit the tf-idf vocabulary on the catalogue and report how many terms
were kept and how long training took.

Training runs automatically for 'recommend' and 'search'; this command is
for inspecting the model.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

// TermWeight is one vocabulary term and its idf weight.
type TermWeight struct {
	Term string  `json:"term"`
	IDF  float64 `json:"idf"`
}

// TrainResponse is the response for the train command.
type TrainResponse struct {
	Medicines   int          `json:"medicines"`
	Documents   int          `json:"documents"`
	Dimensions  int          `json:"dimensions"`
	ZeroVectors int          `json:"zero_vectors"`
	DurationMS  float64      `json:"duration_ms"`
	Terms       []TermWeight `json:"terms,omitempty"`
}

func runTrain(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	svc, stats := mustTrainService(repoRoot)

	resp := TrainResponse{
		Medicines:   stats.Medicines,
		Documents:   svc.Vocabulary().Documents(),
		Dimensions:  stats.Dimensions,
		ZeroVectors: stats.ZeroVectors,
		DurationMS:  float64(stats.Duration.Microseconds()) / 1000,
	}
	if trainTerms {
		resp.Terms = termWeights(svc.Vocabulary())
	}

	if humanOutput {
		outputHuman("Trained on %d medicines in %s\n", stats.Medicines, formatDuration(stats.Duration))
		outputHuman("  Vocabulary: %d terms\n", stats.Dimensions)
		if stats.ZeroVectors > 0 {
			outputHuman("  Without features: %d medicines (always ranked last)\n", stats.ZeroVectors)
		}
		for _, tw := range resp.Terms {
			outputHuman("  %-30s %.4f\n", tw.Term, tw.IDF)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}

// termWeights lists the vocabulary in index order with idf weights.
func termWeights(vocab *recommend.Vocabulary) []TermWeight {
	weights := make([]TermWeight, vocab.Len())
	for i := range weights {
		term := vocab.Term(i)
		weights[i] = TermWeight{Term: term, IDF: vocab.IDF(term)}
	}
	return weights
}
