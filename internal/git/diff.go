package git

import (
	"reflect"
	"sort"

	"github.com/matsen/medrec/internal/medicine"
	"github.com/matsen/medrec/internal/storage"
)

// Change is a medicine present in both versions with different content.
type Change struct {
	Old medicine.Medicine
	New medicine.Medicine
}

// Diff is the change in the catalogue between two states. Each list is
// sorted by name key.
type Diff struct {
	Added   []medicine.Medicine
	Removed []medicine.Medicine
	Changed []Change
}

// DiffSince compares the working-tree catalogue at path to its content at
// commitRef.
func DiffSince(gitRoot, path, commitRef string) (*Diff, error) {
	rel, err := RelPath(gitRoot, path)
	if err != nil {
		return nil, err
	}

	old, err := MedicinesAtCommit(gitRoot, commitRef, rel)
	if err != nil {
		return nil, err
	}

	current, err := storage.ReadAll(path)
	if err != nil {
		return nil, err
	}

	return DiffMedicines(old, current), nil
}

// DiffMedicines matches medicines by name key. When a key repeats, the
// first occurrence is compared.
func DiffMedicines(old, current []medicine.Medicine) *Diff {
	oldMap := firstByKey(old)
	currentMap := firstByKey(current)

	diff := &Diff{}
	for key, m := range currentMap {
		prev, exists := oldMap[key]
		switch {
		case !exists:
			diff.Added = append(diff.Added, m)
		case !reflect.DeepEqual(normalized(prev), normalized(m)):
			diff.Changed = append(diff.Changed, Change{Old: prev, New: m})
		}
	}
	for key, m := range oldMap {
		if _, exists := currentMap[key]; !exists {
			diff.Removed = append(diff.Removed, m)
		}
	}

	sortByKey(diff.Added)
	sortByKey(diff.Removed)
	sort.Slice(diff.Changed, func(i, j int) bool {
		return diff.Changed[i].New.Key() < diff.Changed[j].New.Key()
	})
	return diff
}

func firstByKey(meds []medicine.Medicine) map[string]medicine.Medicine {
	m := make(map[string]medicine.Medicine, len(meds))
	for _, med := range meds {
		if _, seen := m[med.Key()]; !seen {
			m[med.Key()] = med
		}
	}
	return m
}

// normalized treats nil and empty lists alike.
func normalized(m medicine.Medicine) medicine.Medicine {
	if len(m.Uses) == 0 {
		m.Uses = nil
	}
	if len(m.Components) == 0 {
		m.Components = nil
	}
	return m
}

func sortByKey(meds []medicine.Medicine) {
	sort.Slice(meds, func(i, j int) bool { return meds[i].Key() < meds[j].Key() })
}
