package git

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/matsen/medrec/internal/medicine"
	"github.com/matsen/medrec/internal/storage"
)

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir, "-c", "user.email=test@example.com", "-c", "user.name=Test"}, args...)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// setupRepo creates a git repository with one committed catalogue.
func setupRepo(t *testing.T) (string, string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	root := t.TempDir()
	runGit(t, root, "init", "-q")

	dir := filepath.Join(root, ".medrec")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "medicines.jsonl")
	initial := []medicine.Medicine{
		{Name: "Aspirin", Uses: []string{"pain relief"}},
		{Name: "Ibuprofen", Uses: []string{"inflammation"}},
	}
	if err := storage.WriteAll(path, initial); err != nil {
		t.Fatal(err)
	}
	runGit(t, root, "add", ".medrec/medicines.jsonl")
	runGit(t, root, "commit", "-q", "-m", "initial catalogue")

	return root, path
}

func TestDiffSince(t *testing.T) {
	root, path := setupRepo(t)

	gitRoot, err := FindRepoRoot(filepath.Dir(path))
	if err != nil {
		t.Fatalf("FindRepoRoot() error = %v", err)
	}

	rel, err := RelPath(gitRoot, path)
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}
	if rel != ".medrec/medicines.jsonl" {
		t.Errorf("RelPath() = %q", rel)
	}
	if !IsFileTracked(gitRoot, rel) {
		t.Error("catalogue should be tracked")
	}

	updated := []medicine.Medicine{
		{Name: "Aspirin", Uses: []string{"pain relief"}},
		{Name: "Cetirizine", Uses: []string{"allergy"}},
	}
	if err := storage.WriteAll(path, updated); err != nil {
		t.Fatal(err)
	}

	diff, err := DiffSince(root, path, "HEAD")
	if err != nil {
		t.Fatalf("DiffSince() error = %v", err)
	}
	if len(diff.Added) != 1 || diff.Added[0].Name != "Cetirizine" {
		t.Errorf("Added = %+v", diff.Added)
	}
	if len(diff.Removed) != 1 || diff.Removed[0].Name != "Ibuprofen" {
		t.Errorf("Removed = %+v", diff.Removed)
	}
}

func TestValidateCommit(t *testing.T) {
	root, _ := setupRepo(t)

	if _, err := ValidateCommit(root, "HEAD"); err != nil {
		t.Errorf("ValidateCommit(HEAD) error = %v", err)
	}
	if _, err := ValidateCommit(root, "no-such-branch"); !errors.Is(err, ErrCommitNotFound) {
		t.Errorf("expected ErrCommitNotFound, got %v", err)
	}
}

func TestMedicinesAtCommit_MissingFile(t *testing.T) {
	root, _ := setupRepo(t)

	meds, err := MedicinesAtCommit(root, "HEAD", "missing.jsonl")
	if err != nil {
		t.Fatalf("MedicinesAtCommit() error = %v", err)
	}
	if len(meds) != 0 {
		t.Errorf("expected empty catalogue, got %d", len(meds))
	}
}

func TestFindRepoRoot_NotRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	if _, err := FindRepoRoot(t.TempDir()); !errors.Is(err, ErrNotGitRepo) {
		t.Errorf("expected ErrNotGitRepo, got %v", err)
	}
}
