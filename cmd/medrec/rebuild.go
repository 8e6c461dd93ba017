package main

import (
	"github.com/matsen/medrec/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query cache from the catalogue",
	Long: `Rebuild the SQLite query cache from medicines.jsonl.

Use this after pulling changes from git or editing the catalogue by hand.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status    string `json:"status"`
	Medicines int    `json:"medicines"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	count, err := db.RebuildFromJSONL(config.MedicinesPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding database: %v", err)
	}

	if humanOutput {
		outputHuman("Rebuilt query cache with %d medicines\n", count)
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Medicines: count})
	}
	return nil
}
