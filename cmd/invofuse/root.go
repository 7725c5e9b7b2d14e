package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/invofuse/invofuse/internal/config"
	"github.com/invofuse/invofuse/internal/home"
	"github.com/invofuse/invofuse/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "invofuse",
	Short: "Invoice field extraction with OCR, VLM, and detection fusion",
	Long: `Invofuse extracts structured fields from scanned tractor loan
quotations and invoices: dealer name, model name, horse power, asset cost,
and signature/stamp presence.

Three independent signals are fused per document:
  - OCR transcript from a PaddleOCR model server
  - Structured extraction from a vision-language model
  - Signature/stamp bounding boxes from a detector

Candidates are fuzzy-matched against master reference lists, validated
against domain plausibility ranges, and emitted with per-field confidence
and a human-readable explanation.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.invofuse/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "invofuse home directory (default: ~/.invofuse)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "json", "output format: json or yaml",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(sidecarCmd)
	rootCmd.AddCommand(versionCmd)
}

// getHome resolves the home directory from the flag or default.
func getHome() (*home.Dir, error) {
	return home.New(homeDir)
}

// getConfig loads the configuration, preferring the home config file when no
// explicit --config was given.
func getConfig(h *home.Dir) (*config.Config, error) {
	path := cfgFile
	if path == "" && h.ConfigExists() {
		path = h.ConfigPath()
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		return nil, err
	}
	return mgr.Get(), nil
}

// newLogger builds the CLI logger writing to stderr so record output on
// stdout stays clean.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
