package main

import (
	"strings"

	"github.com/matsen/medrec/internal/config"
	"github.com/matsen/medrec/internal/curate"
	"github.com/matsen/medrec/internal/medicine"
	"github.com/matsen/medrec/internal/storage"
	"github.com/matsen/medrec/internal/validation"
	"github.com/spf13/cobra"
)

var (
	addUses        []string
	addComponents  []string
	addCategory    string
	addDescription string
	addNoInfer     bool
)

func init() {
	addCmd.Flags().StringSliceVarP(&addUses, "use", "u", nil, "Condition the medicine treats (repeatable)")
	addCmd.Flags().StringSliceVarP(&addComponents, "component", "c", nil, "Active ingredient (repeatable)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Therapeutic category")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Free-text description")
	addCmd.Flags().BoolVar(&addNoInfer, "no-infer", false, "Do not infer a missing category from uses")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a medicine to the catalogue",
	Long: `Add a medicine to the catalogue.

Uses and components are lowercased. When no category is given, one is
inferred from the uses if possible.

Examples:
  medrec add Cetirizine -u allergy -u "hay fever" -c cetirizine
  medrec add "Vitamin D" --component cholecalciferol --category Supplement`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

// AddResponse is the response for the add command.
type AddResponse struct {
	Status           string            `json:"status"`
	Medicine         medicine.Medicine `json:"medicine"`
	CategoryInferred bool              `json:"category_inferred,omitempty"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	m, inferred := buildMedicine(strings.Join(args, " "), addUses, addComponents, addCategory, addDescription, !addNoInfer)
	if err := validation.ValidateMedicine(m); err != nil {
		exitWithError(ExitDataError, "invalid medicine: %v", err)
	}

	existing := mustReadCatalogue(repoRoot)
	if i, found := storage.FindByName(existing, m.Name); found {
		exitWithError(ExitDataError, "medicine already exists: %s", existing[i].Name)
	}

	path := config.MedicinesPath(repoRoot)
	if err := storage.Append(path, m); err != nil {
		exitWithError(ExitError, "adding medicine: %v", err)
	}

	db := mustOpenDatabase(repoRoot)
	defer db.Close()
	if _, err := db.RebuildFromJSONL(path); err != nil {
		exitWithError(ExitError, "rebuilding database: %v", err)
	}

	if humanOutput {
		outputHuman("Added %s\n", m.Name)
		if inferred {
			outputHuman("Category inferred: %s\n", m.Category)
		}
	} else {
		outputJSON(AddResponse{Status: "added", Medicine: m, CategoryInferred: inferred})
	}
	return nil
}

// buildMedicine assembles a record from command-line input. It reports
// whether the category was inferred.
func buildMedicine(name string, uses, components []string, category, description string, infer bool) (medicine.Medicine, bool) {
	m := medicine.Medicine{
		Name:        strings.TrimSpace(name),
		Uses:        normalizeTerms(uses),
		Components:  normalizeTerms(components),
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
	}

	if m.Category != "" || !infer {
		return m, false
	}
	if c, ok := curate.InferCategory(m.Uses); ok {
		m.Category = c
		return m, true
	}
	return m, false
}

// normalizeTerms lowercases and trims terms, dropping blanks.
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
