package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/medrec/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set repository configuration values.

Usage:
  medrec config                    # Show all config
  medrec config default-top-n      # Get specific value
  medrec config default-top-n 10   # Set value
  medrec config include-self true

Keys:
  default-top-n  Number of recommendations when -n is not given
  include-self   Keep the queried medicine in its own results (true/false)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	DefaultTopN int  `json:"default_top_n"`
	IncludeSelf bool `json:"include_self"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	if len(args) == 0 {
		if humanOutput {
			outputHuman("default-top-n: %d\n", cfg.DefaultTopN)
			outputHuman("include-self:  %t\n", cfg.IncludeSelf)
		} else {
			outputJSON(ConfigResponse{DefaultTopN: cfg.DefaultTopN, IncludeSelf: cfg.IncludeSelf})
		}
		return nil
	}

	key := normalizeKey(args[0])

	if len(args) == 1 {
		value, err := getConfigValue(cfg, key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			outputHuman("%s\n", value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		return nil
	}

	if err := setConfigValue(cfg, key, args[1]); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		outputHuman("Updated %s to %s\n", key, args[1])
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: args[1]})
	}
	return nil
}

func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "default-top-n":
		return strconv.Itoa(cfg.DefaultTopN), nil
	case "include-self":
		return strconv.FormatBool(cfg.IncludeSelf), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "default-top-n":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("default-top-n must be an integer: %s", value)
		}
		if err := config.ValidateTopN(n); err != nil {
			return err
		}
		cfg.DefaultTopN = n
	case "include-self":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("include-self must be true or false: %s", value)
		}
		cfg.IncludeSelf = b
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// normalizeKey converts key formats (default-top-n, default_top_n, DEFAULT_TOP_N) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
