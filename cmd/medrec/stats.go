package main

import (
	"sort"

	"github.com/matsen/medrec/internal/logging"
	"github.com/matsen/medrec/internal/medicine"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalogue statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

// StatsResponse is the response for the stats command.
type StatsResponse struct {
	medicine.Statistics
	Cached     int  `json:"cached_medicines"`
	CacheStale bool `json:"cache_stale"`
}

func runStats(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	stats := medicine.Stats(mustReadCatalogue(repoRoot))

	db := mustOpenDatabase(repoRoot)
	defer db.Close()
	cached, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "counting cached medicines: %v", err)
	}
	resp := StatsResponse{Statistics: stats, Cached: cached, CacheStale: cached != stats.TotalMedicines}
	if resp.CacheStale {
		logging.Warn().Int("catalogue", stats.TotalMedicines).Int("cache", cached).Msg("query cache is stale, run 'medrec rebuild'")
	}

	if humanOutput {
		outputHuman("Medicines:   %d\n", stats.TotalMedicines)
		outputHuman("Uses:        %d (%.1f per medicine)\n", stats.TotalUses, stats.AvgUsesPerMedicine)
		outputHuman("Components:  %d (%.1f per medicine)\n", stats.TotalComponents, stats.AvgComponents)
		if len(stats.Categories) > 0 {
			outputHuman("\nCategories:\n")
			for _, name := range sortedCategories(stats.Categories) {
				outputHuman("  %-20s %d\n", name, stats.Categories[name])
			}
		}
		if resp.CacheStale {
			outputHuman("\nQuery cache holds %d medicines; run 'medrec rebuild'\n", cached)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}

// sortedCategories orders categories by count descending, then name.
func sortedCategories(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
