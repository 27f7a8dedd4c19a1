// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the allocations-engine CLI.
// Subcommands search the allocations catalog, recommend similar projects,
// print name variants, and correlate projects with funding awards.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pdiddy/allocations-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the allocations-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "allocations-engine",
	Short: "Fuzzy search and funding reconciliation for allocations projects",
	Long: `allocations-engine searches the allocations project catalog with a small
boolean query language, recommends similar projects, and reconciles project
PIs with a separately maintained funding-awards catalog.

Subcommands: search, similar, variants, correlate, and repl. The repl keeps
one engine and its page cache alive across queries.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			slog.Debug("loaded secrets", "keys", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./allocations-engine.yaml or ~/.config/allocations-engine/allocations-engine.yaml)")
	pf.String("fixture", "", "read projects from a YAML fixture instead of the allocations API")
	pf.String("base-url", "", "allocations API endpoint")
	pf.String("awards-url", "", "awards service base URL (empty disables funding correlation)")
	pf.Int("max-pages", 0, "page scan budget per request (default 10)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-file", "", "write logs to this file with rotation instead of stderr")
	pf.String("secrets-dir", ".secrets/", "directory of secret files")

	bindFlag("allocations.fixture_file", pf.Lookup("fixture"))
	bindFlag("allocations.base_url", pf.Lookup("base-url"))
	bindFlag("awards.base_url", pf.Lookup("awards-url"))
	bindFlag("allocations.max_pages", pf.Lookup("max-pages"))
	bindFlag("log.level", pf.Lookup("log-level"))
	bindFlag("log.file", pf.Lookup("log-file"))
	bindFlag("secrets_dir", pf.Lookup("secrets-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("allocations-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "allocations-engine"))
		}
	}

	// A .env file only fills variables that are not already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}
	viper.SetEnvPrefix("ALLOCATIONS_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	setConfigDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogging installs the default slog logger. Logs go to stderr unless a
// log file is configured, in which case they are rotated by size.
func setupLogging(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log.level"))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", viper.GetString("log.level"), err)
	}

	var w io.Writer = cmd.ErrOrStderr()
	if path := viper.GetString("log.file"); path != "" {
		w = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    viper.GetInt("log.max_size_mb"),
			MaxBackups: viper.GetInt("log.max_backups"),
			Compress:   true,
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("component", "allocations-engine"))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
