package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/invofuse/invofuse/internal/masterlist"
	"github.com/invofuse/invofuse/internal/pipeline"
	"github.com/invofuse/invofuse/internal/providers"
	"github.com/invofuse/invofuse/internal/reconcile"
)

var processOutDir string

var processCmd = &cobra.Command{
	Use:   "process <file-or-directory>",
	Short: "Extract fields from one document or a directory of documents",
	Long: `Process a single invoice image/PDF, or every document in a
directory. Single-document records print to stdout; batch records are
written one JSON file per document to the output directory
(default: ~/.invofuse/results).

The OCR and detector sidecars must be reachable; start them with
'invofuse sidecar start'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		input := args[0]

		h, err := getHome()
		if err != nil {
			return err
		}
		cfg, err := getConfig(h)
		if err != nil {
			return err
		}
		log := newLogger()

		masters, err := masterlist.New(
			h.Resolve(cfg.Masters.DealerPath),
			h.Resolve(cfg.Masters.AssetPath),
			log,
		)
		if err != nil {
			return err
		}

		registry := providers.NewRegistry(cfg.ToRegistryConfig(), log)
		pl := pipeline.New(log, registry, masters,
			reconcile.Config{
				DealerThreshold: cfg.Matching.FuzzyMatchThreshold,
				ModelThreshold:  cfg.Matching.ModelMatchThreshold,
			},
			cfg.Matching.ConfidenceThreshold,
			pipeline.Config{
				Workers:          cfg.Batch.Workers,
				CostPerSecondUSD: cfg.Batch.CostPerSecondUSD,
			},
		)

		info, err := os.Stat(input)
		if err != nil {
			return fmt.Errorf("input path does not exist: %w", err)
		}

		if info.IsDir() {
			outDir := processOutDir
			if outDir == "" {
				outDir = h.ResultsPath()
			}
			summary, err := pl.ProcessBatch(ctx, input, outDir)
			if err != nil {
				return err
			}
			return printRecord(summary)
		}

		rec, err := pl.ProcessDocument(ctx, input)
		if err != nil {
			return err
		}
		if processOutDir != "" {
			if err := os.MkdirAll(processOutDir, 0o755); err != nil {
				return err
			}
			outPath := filepath.Join(processOutDir, rec.DocID+".json")
			data, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Record written to %s\n", outPath)
		}
		return printRecord(rec)
	},
}

func init() {
	processCmd.Flags().StringVar(
		&processOutDir, "out", "", "output directory for result records",
	)
}

// printRecord writes v to stdout in the selected output format.
func printRecord(v any) error {
	switch outputFormat {
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
}
