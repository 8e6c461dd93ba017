package main

import (
	"os"
	"path/filepath"

	"github.com/matsen/medrec/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new medrec repository",
	Long: `Initialize a new medrec repository in the current directory.

Creates:
  .medrec/
  ├── medicines.jsonl  # Empty catalogue
  ├── config.json      # Default config
  └── cache/           # SQLite cache (gitignored)`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root := os.Getenv("MEDREC_ROOT")
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			exitWithError(ExitError, "getting current directory: %v", err)
		}
		root = cwd
	}
	root = config.ExpandPath(root)

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a medrec repository")
	}

	if err := initRepository(root); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Initialized medrec repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: root})
	}
	return nil
}

// initRepository creates the .medrec layout under root.
func initRepository(root string) error {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		return err
	}

	f, err := os.Create(config.MedicinesPath(root))
	if err != nil {
		return err
	}
	f.Close()

	if err := config.Default().Save(root); err != nil {
		return err
	}

	gitignore := filepath.Join(config.MedrecPath(root), ".gitignore")
	return os.WriteFile(gitignore, []byte(config.CacheDir+"/\n"), 0644)
}
