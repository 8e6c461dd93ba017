package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/matsen/medrec/internal/config"
	"github.com/matsen/medrec/internal/conflict"
	"github.com/matsen/medrec/internal/logging"
	"github.com/matsen/medrec/internal/medicine"
	"github.com/spf13/cobra"
)

var (
	resolveDryRun bool
	resolvePrefer string
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveDryRun, "dry-run", false, "Show proposed resolution without modifying files")
	resolveCmd.Flags().StringVar(&resolvePrefer, "prefer", "", "Side to take for conflicting category or description (ours, theirs)")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve git merge conflicts in medicines.jsonl",
	Long: `Resolve git merge conflicts in medicines.jsonl.

Medicines on both sides of a conflict are matched by name (ignoring case).
Uses and components are merged. A category or description set differently
on each side is a true conflict and needs --prefer.

Examples:
  medrec resolve                  # Auto-resolve and write result
  medrec resolve --dry-run        # Preview what would happen
  medrec resolve --prefer theirs  # Take their side for true conflicts`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

// ResolveOp describes what happened to one medicine.
type ResolveOp struct {
	Name   string `json:"name"`
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// UnresolvedInfo names a medicine whose fields truly conflict.
type UnresolvedInfo struct {
	Name      string                   `json:"name"`
	Conflicts []conflict.FieldConflict `json:"conflicts"`
}

// ResolveResult is the response for the resolve command.
type ResolveResult struct {
	Regions    int              `json:"regions"`
	Total      int              `json:"total_medicines"`
	Merged     int              `json:"merged"`
	OursOnly   int              `json:"ours_only"`
	TheirsOnly int              `json:"theirs_only"`
	DryRun     bool             `json:"dry_run,omitempty"`
	Operations []ResolveOp      `json:"operations"`
	Unresolved []UnresolvedInfo `json:"unresolved,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	prefer, err := conflict.ParseSide(resolvePrefer)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	repoRoot := mustFindRepository()
	path := config.MedicinesPath(repoRoot)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			exitWithError(ExitDataError, "medicines.jsonl not found at %s", path)
		}
		exitWithError(ExitError, "opening medicines.jsonl: %v", err)
	}
	parsed, err := conflict.Parse(f)
	f.Close()
	if err != nil {
		var parseErr conflict.ParseError
		if errors.As(err, &parseErr) {
			exitWithError(ExitDataError, "parsing medicines.jsonl: %s", parseErr.Error())
		}
		exitWithError(ExitError, "parsing medicines.jsonl: %v", err)
	}

	if !parsed.HasConflicts() {
		if humanOutput {
			outputHuman("No conflicts detected in medicines.jsonl.\n")
		} else {
			outputJSON(ResolveResult{Operations: []ResolveOp{}})
		}
		return nil
	}

	result, byRegion, unresolved := resolveConflicts(parsed, prefer)
	result.DryRun = resolveDryRun

	meds, err := conflict.Assemble(parsed, byRegion)
	if err != nil {
		exitWithError(ExitDataError, "assembling medicines.jsonl: %v", err)
	}
	result.Total = len(meds)

	logging.Debug().
		Int("regions", result.Regions).
		Int("merged", result.Merged).
		Int("unresolved", len(result.Unresolved)).
		Msg("conflicts resolved")

	if resolveDryRun {
		printResolveResult(result)
		return nil
	}

	if unresolved {
		printResolveResult(result)
		if humanOutput {
			fmt.Fprintln(os.Stderr, "\nerror: conflicting fields require --prefer ours|theirs")
		}
		os.Exit(ExitError)
	}

	mustWriteCatalogue(repoRoot, meds)

	printResolveResult(result)
	if humanOutput {
		outputHuman("\nResolved catalogue written to %s\n", path)
	}
	return nil
}

// resolveConflicts resolves every region, returning the medicines grouped
// by region for conflict.Assemble. The bool reports whether any true
// conflict was left without a preferred side.
func resolveConflicts(parsed *conflict.ParseResult, prefer conflict.Side) (ResolveResult, [][]medicine.Medicine, bool) {
	result := ResolveResult{
		Regions:    len(parsed.Conflicts),
		Operations: []ResolveOp{},
	}
	byRegion := make([][]medicine.Medicine, len(parsed.Conflicts))
	unresolved := false

	for i, region := range parsed.Conflicts {
		matched := conflict.MatchMedicines(region)
		var resolved []medicine.Medicine

		for _, match := range matched.Matches {
			plan := conflict.Resolve(match)
			reason := plan.Reason

			if plan.Action == conflict.ActionConflict {
				if prefer == conflict.SideNone {
					unresolved = true
					result.Unresolved = append(result.Unresolved, UnresolvedInfo{
						Name:      plan.Name,
						Conflicts: plan.Conflicts,
					})
					result.Operations = append(result.Operations, ResolveOp{
						Name:   plan.Name,
						Action: string(plan.Action),
						Reason: reason,
					})
					continue
				}
				reason = fmt.Sprintf("%s, took %s", reason, prefer)
			}

			resolved = append(resolved, conflict.Apply(match, plan, prefer))
			if plan.Action == conflict.ActionMerge || plan.Action == conflict.ActionConflict {
				result.Merged++
			}
			result.Operations = append(result.Operations, ResolveOp{
				Name:   plan.Name,
				Action: string(plan.Action),
				Reason: reason,
			})
		}

		for _, m := range matched.OursOnly {
			resolved = append(resolved, m)
			result.OursOnly++
			result.Operations = append(result.Operations, ResolveOp{
				Name:   m.Name,
				Action: string(conflict.ActionAddOurs),
				Reason: "medicine only in ours",
			})
		}
		for _, m := range matched.TheirsOnly {
			resolved = append(resolved, m)
			result.TheirsOnly++
			result.Operations = append(result.Operations, ResolveOp{
				Name:   m.Name,
				Action: string(conflict.ActionAddTheirs),
				Reason: "medicine only in theirs",
			})
		}

		byRegion[i] = resolved
	}

	return result, byRegion, unresolved
}

func printResolveResult(result ResolveResult) {
	if !humanOutput {
		outputJSON(result)
		return
	}

	if result.DryRun {
		outputHuman("Dry run: no files modified\n\n")
	}
	outputHuman("Conflict regions: %d\n", result.Regions)
	for _, op := range result.Operations {
		outputHuman("  %-12s %s (%s)\n", op.Action, op.Name, op.Reason)
	}
	outputHuman("\nMerged: %d  Ours only: %d  Theirs only: %d  Total: %d\n",
		result.Merged, result.OursOnly, result.TheirsOnly, result.Total)

	if len(result.Unresolved) > 0 {
		outputHuman("\nUnresolved conflicts:\n")
		for _, u := range result.Unresolved {
			for _, c := range u.Conflicts {
				outputHuman("  %s.%s: ours=%q theirs=%q\n", u.Name, c.Field,
					truncateString(c.Ours, ListDetailMaxLen), truncateString(c.Theirs, ListDetailMaxLen))
			}
		}
	}
}
