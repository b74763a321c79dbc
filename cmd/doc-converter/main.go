// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the doc-converter CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-converter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the doc-converter CLI.
var rootCmd = &cobra.Command{
	Use:   "doc-converter",
	Short: "Simulated PDF to DOCX/Markdown conversion workflow",
	Long: `doc-converter walks a PDF through a staged conversion in one of three
modes and exports a placeholder result file.

  pro       Complex tables for legal and financial documents (.docx)
  academic  Citations, equations, and footnotes of research papers (.md)
  secure    Private conversion with no numeric summary (.docx)

The conversion is a simulation: the PDF is never read, and the reported
figures are fixed demonstration values for each mode. Use convert for a
single run or shell for an interactive session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is not an error.
		_ = godotenv.Load()
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: doc-converter.yaml in . or ~/.config/doc-converter)")
	flags.String("mode", string(types.DefaultMode), "conversion mode: pro, academic, or secure")
	flags.Duration("stage-interval", types.DefaultStageInterval, "pause before each progress checkpoint")
	flags.String("output-dir", ".", "directory for downloaded files")
	flags.String("log-level", "warn", "log level: debug, info, warn, or error")

	for key, flag := range map[string]string{
		"mode":           "mode",
		"stage_interval": "stage-interval",
		"output_dir":     "output-dir",
		"log_level":      "log-level",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("doc-converter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "doc-converter"))
		}
	}

	viper.SetEnvPrefix("DOC_CONVERTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env, and file settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Mode != "" {
		m, err := types.ParseMode(string(cfg.Mode))
		if err != nil {
			return types.Config{}, err
		}
		cfg.Mode = m
	}
	return cfg.WithDefaults(), nil
}

// newLogger builds a text logger at the named level.
func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func main() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
