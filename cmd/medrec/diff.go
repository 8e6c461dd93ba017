package main

import (
	"errors"

	"github.com/matsen/medrec/internal/config"
	"github.com/matsen/medrec/internal/git"
	"github.com/matsen/medrec/internal/medicine"
	"github.com/spf13/cobra"
)

var diffSince string

func init() {
	diffCmd.Flags().StringVar(&diffSince, "since", "HEAD", "Commit to compare the working tree against")
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show medicines added, removed or changed since a commit",
	Long: `Show medicines added, removed or changed in the working tree since a commit.

Medicines are matched by name, ignoring case.

Examples:
  medrec diff                # Uncommitted changes
  medrec diff --since HEAD~3
  medrec diff --since v1.0 --human`,
	Args: cobra.NoArgs,
	RunE: runDiff,
}

// DiffChange is a medicine whose content differs between versions.
type DiffChange struct {
	Name string            `json:"name"`
	Old  medicine.Medicine `json:"old"`
	New  medicine.Medicine `json:"new"`
}

// DiffResult is the response for the diff command.
type DiffResult struct {
	Since   string              `json:"since"`
	Added   []medicine.Medicine `json:"added"`
	Removed []medicine.Medicine `json:"removed"`
	Changed []DiffChange        `json:"changed"`
}

func runDiff(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	gitRoot := mustFindGitRepo(repoRoot)
	sha := mustValidateCommit(gitRoot, diffSince)
	path := config.MedicinesPath(repoRoot)
	mustCheckGitTracking(gitRoot, path)

	diff, err := git.DiffSince(gitRoot, path, sha)
	if err != nil {
		exitWithError(ExitDataError, "computing diff: %v", err)
	}

	result := buildDiffResult(diffSince, diff)

	if !humanOutput {
		outputJSON(result)
		return nil
	}

	if len(result.Added)+len(result.Removed)+len(result.Changed) == 0 {
		outputHuman("No changes since %s\n", diffSince)
		return nil
	}
	printDiffSection("Added", "+", result.Added)
	printDiffSection("Removed", "-", result.Removed)
	if len(result.Changed) > 0 {
		outputHuman("Changed (%d):\n", len(result.Changed))
		for _, c := range result.Changed {
			outputHuman("  ~ %s\n", c.Name)
		}
	}
	return nil
}

func buildDiffResult(since string, diff *git.Diff) DiffResult {
	result := DiffResult{
		Since:   since,
		Added:   nonNilMedicines(diff.Added),
		Removed: nonNilMedicines(diff.Removed),
		Changed: make([]DiffChange, 0, len(diff.Changed)),
	}
	for _, c := range diff.Changed {
		result.Changed = append(result.Changed, DiffChange{Name: c.New.Name, Old: c.Old, New: c.New})
	}
	return result
}

func printDiffSection(title, marker string, meds []medicine.Medicine) {
	if len(meds) == 0 {
		return
	}
	outputHuman("%s (%d):\n", title, len(meds))
	for _, m := range meds {
		outputHuman("  %s %s\n", marker, m.Name)
	}
	outputHuman("\n")
}

func nonNilMedicines(meds []medicine.Medicine) []medicine.Medicine {
	if meds == nil {
		return []medicine.Medicine{}
	}
	return meds
}

// mustFindGitRepo finds the git repository root, exits on error.
func mustFindGitRepo(repoRoot string) string {
	gitRoot, err := git.FindRepoRoot(repoRoot)
	if err != nil {
		if errors.Is(err, git.ErrNotGitRepo) {
			exitWithError(ExitError, "not in a git repository\n  Hint: Initialize with 'git init' or navigate to a git repository")
		}
		exitWithError(ExitError, "finding git repository: %v", err)
	}
	return gitRoot
}

// mustValidateCommit validates a commit reference, exits on error.
func mustValidateCommit(gitRoot, commitRef string) string {
	sha, err := git.ValidateCommit(gitRoot, commitRef)
	if err != nil {
		if errors.Is(err, git.ErrCommitNotFound) {
			exitWithError(ExitError, "commit not found: %s\n  Hint: Verify the commit exists with 'git log --oneline'", commitRef)
		}
		exitWithError(ExitError, "validating commit: %v", err)
	}
	return sha
}

// mustCheckGitTracking verifies the catalogue is tracked, exits on error.
func mustCheckGitTracking(gitRoot, path string) {
	rel, err := git.RelPath(gitRoot, path)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if !git.IsFileTracked(gitRoot, rel) {
		exitWithError(ExitError, "%s not tracked by git\n  Hint: Run 'git add %s' to track the file", rel, rel)
	}
}
