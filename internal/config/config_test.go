package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathFunctions(t *testing.T) {
	root := "/test/repo"

	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"MedrecPath", MedrecPath, "/test/repo/.medrec"},
		{"ConfigPath", ConfigPath, "/test/repo/.medrec/config.json"},
		{"MedicinesPath", MedicinesPath, "/test/repo/.medrec/medicines.jsonl"},
		{"CachePath", CachePath, "/test/repo/.medrec/cache"},
		{"DBPath", DBPath, "/test/repo/.medrec/cache/medicines.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(root)
			if got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, root, got, tt.want)
			}
		})
	}
}

func TestIsRepository(t *testing.T) {
	tmpDir := t.TempDir()

	if IsRepository(tmpDir) {
		t.Error("IsRepository() = true for non-repo directory")
	}

	if err := os.Mkdir(filepath.Join(tmpDir, MedrecDir), 0755); err != nil {
		t.Fatalf("Failed to create .medrec: %v", err)
	}

	if !IsRepository(tmpDir) {
		t.Error("IsRepository() = false for repo directory")
	}
}

func TestIsRepository_FileNotDir(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, MedrecDir), []byte("not a dir"), 0644); err != nil {
		t.Fatalf("Failed to create .medrec file: %v", err)
	}

	if IsRepository(tmpDir) {
		t.Error("IsRepository() = true when .medrec is a file")
	}
}

func TestFindRepository(t *testing.T) {
	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, "repo")
	nestedDir := filepath.Join(repoDir, "data", "raw")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}
	if err := os.Mkdir(filepath.Join(repoDir, MedrecDir), 0755); err != nil {
		t.Fatalf("Failed to create .medrec: %v", err)
	}

	for _, start := range []string{nestedDir, repoDir} {
		found, err := FindRepository(start)
		if err != nil {
			t.Fatalf("FindRepository(%q) error = %v", start, err)
		}
		if found != repoDir {
			t.Errorf("FindRepository(%q) = %q, want %q", start, found, repoDir)
		}
	}
}

func TestFindRepository_NotFound(t *testing.T) {
	_, err := FindRepository(t.TempDir())
	if err == nil {
		t.Error("FindRepository() should return error when no repo found")
	}
}

func newRepo(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	if err := os.Mkdir(MedrecPath(tmpDir), 0755); err != nil {
		t.Fatalf("Failed to create .medrec: %v", err)
	}
	return tmpDir
}

func TestConfig_SaveAndLoad(t *testing.T) {
	root := newRepo(t)

	cfg := &Config{DefaultTopN: 8, IncludeSelf: true}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
	}{
		{"empty object", `{}`, Config{DefaultTopN: 5}},
		{"zero top n", `{"default_top_n": 0, "include_self": true}`, Config{DefaultTopN: 5, IncludeSelf: true}},
		{"negative top n", `{"default_top_n": -3}`, Config{DefaultTopN: 5}},
		{"explicit", `{"default_top_n": 2}`, Config{DefaultTopN: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRepo(t)
			if err := os.WriteFile(ConfigPath(root), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(root)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("Load() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	if _, err := Load(newRepo(t)); err == nil {
		t.Error("Load() should return error when config not found")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	root := newRepo(t)
	if err := os.WriteFile(ConfigPath(root), []byte("not json"), 0644); err != nil {
		t.Fatalf("Failed to write invalid config: %v", err)
	}

	if _, err := Load(root); err == nil {
		t.Error("Load() should return error for invalid JSON")
	}
}

func TestValidateTopN(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{1, false},
		{5, false},
		{100, false},
		{0, true},
		{-1, true},
	}

	for _, tt := range tests {
		err := ValidateTopN(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTopN(%d) error = %v, wantErr = %v", tt.n, err, tt.wantErr)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~", home},
		{"~/catalogue", filepath.Join(home, "catalogue")},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.path); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
