// Package main provides the medrec CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/matsen/medrec/internal/config"
	"github.com/matsen/medrec/internal/logging"
	"github.com/matsen/medrec/internal/medicine"
	"github.com/matsen/medrec/internal/recommend"
	"github.com/matsen/medrec/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool

	logLevel  string
	logFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "medrec",
	Short: "Content-based medicine recommender",
	Long: `medrec recommends medicines similar to a given one, based on their
therapeutic uses and active components.

The catalogue is stored in git-versionable JSONL with an ephemeral SQLite
cache for listing and keyword search. The recommendation model is trained
from the catalogue on every invocation. All commands output JSON by default.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupEnvironment,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json")
	rootCmd.Version = Version
}

// setupEnvironment loads .env and configures logging before any command runs.
func setupEnvironment(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	global, err := config.LoadGlobalConfig()
	if err != nil {
		return err
	}

	cfg := resolveLogConfig(logLevel, logFormat, global)
	if err := logging.ValidateLevel(cfg.Level); err != nil {
		return err
	}
	if err := logging.ValidateFormat(cfg.Format); err != nil {
		return err
	}
	logging.Init(cfg)
	return nil
}

// resolveLogConfig picks level and format from flags, then LOG_LEVEL and
// LOG_FORMAT, then the global config.
func resolveLogConfig(flagLevel, flagFormat string, global *config.GlobalConfig) logging.Config {
	cfg := logging.DefaultConfig()

	level := config.GetConfigValue("LOG_LEVEL", global.LogLevel)
	if flagLevel != "" {
		level = flagLevel
	}
	if level != "" {
		cfg.Level = level
	}

	format := config.GetConfigValue("LOG_FORMAT", global.LogFormat)
	if flagFormat != "" {
		format = flagFormat
	}
	if format != "" {
		cfg.Format = strings.ToLower(format)
	}

	return cfg
}

// getStartingDirectory returns the directory to start searching for a repository.
// Checks MEDREC_ROOT, then global config medrec_path, then the current directory.
func getStartingDirectory() (string, int) {
	if root := os.Getenv("MEDREC_ROOT"); root != "" {
		return config.ExpandPath(root), 0
	}
	if root := config.GetMedrecPath(); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindRepository finds and validates the repository, exits on error.
// Returns the repository root path.
func mustFindRepository() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(start)
	if err != nil {
		if humanOutput {
			fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
			os.Exit(ExitConfigError)
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	return repoRoot
}

// mustOpenDatabase opens the SQLite cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(repoRoot string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(repoRoot), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustReadCatalogue reads medicines.jsonl, exits on error.
func mustReadCatalogue(repoRoot string) []medicine.Medicine {
	meds, err := storage.ReadAll(config.MedicinesPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "reading catalogue: %v", err)
	}
	return meds
}

// mustWriteCatalogue replaces medicines.jsonl and rebuilds the query cache.
func mustWriteCatalogue(repoRoot string, meds []medicine.Medicine) {
	if err := storage.WriteAll(config.MedicinesPath(repoRoot), meds); err != nil {
		exitWithError(ExitError, "writing catalogue: %v", err)
	}

	db := mustOpenDatabase(repoRoot)
	defer db.Close()
	if _, err := db.Rebuild(meds); err != nil {
		exitWithError(ExitError, "rebuilding database: %v", err)
	}
}

// mustLoadService loads the catalogue into a new, untrained service.
func mustLoadService(repoRoot string) *recommend.Service {
	meds := mustReadCatalogue(repoRoot)

	svc := recommend.NewService()
	if err := svc.Load(meds); err != nil {
		if errors.Is(err, recommend.ErrEmptyCatalogue) {
			exitWithError(ExitDataError, "catalogue is empty\n\nAdd medicines with 'medrec import <file>'.")
		}
		exitWithError(ExitDataError, "loading catalogue: %v", err)
	}
	return svc
}

// mustTrainService loads the catalogue and trains the recommendation model.
func mustTrainService(repoRoot string) (*recommend.Service, *recommend.TrainStats) {
	svc := mustLoadService(repoRoot)

	stats, err := svc.Train()
	if err != nil {
		exitWithError(ExitDataError, "training model: %v", err)
	}
	l := logging.With().Str("component", "recommend").Logger()
	l.Debug().
		Int("medicines", stats.Medicines).
		Int("dimensions", stats.Dimensions).
		Int("zero_vectors", stats.ZeroVectors).
		Dur("duration", stats.Duration).
		Msg("model trained")

	return svc, stats
}

// mustResolveMedicine finds a medicine by name in a loaded service, exits
// with ExitNotFound if there is no match.
func mustResolveMedicine(svc *recommend.Service, name string) (int, medicine.Medicine) {
	pos, fuzzy, ok := svc.Resolve(name)
	if !ok {
		exitWithError(ExitNotFound, "medicine '%s' not found", name)
	}
	m := svc.Medicines()[pos]
	if fuzzy {
		logging.Info().Str("query", name).Str("matched", m.Name).Msg("no exact name match, using substring match")
	}
	return pos, m
}
