package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// BatchSummary reports the outcome of a batch run.
type BatchSummary struct {
	RunID            string  `json:"run_id"`
	Total            int     `json:"total"`
	Processed        int     `json:"processed"`
	Failed           int     `json:"failed"`
	TotalTimeSeconds float64 `json:"total_time_seconds"`
	TotalCostUSD     float64 `json:"total_cost_usd"`
}

// ProcessBatch processes every document in inputDir with a bounded worker
// pool, writing one JSON record per document to outputDir. Per-document
// failures are logged and counted, never fatal to the batch.
func (p *Pipeline) ProcessBatch(ctx context.Context, inputDir, outputDir string) (*BatchSummary, error) {
	docs, err := listDocuments(inputDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	runID := uuid.New().String()
	log := p.log.With("run_id", runID)
	log.Info("batch started", "documents", len(docs), "workers", p.cfg.Workers)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		summary = BatchSummary{RunID: runID, Total: len(docs)}
	)

	sem := make(chan struct{}, p.cfg.Workers)
	start := time.Now()

	for _, path := range docs {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{} // acquire
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }() // release

			rec, err := p.ProcessDocument(ctx, path)
			if err != nil {
				log.Error("document failed", "path", path, "err", err)
				mu.Lock()
				summary.Failed++
				mu.Unlock()
				return
			}

			outPath := filepath.Join(outputDir, rec.DocID+".json")
			if err := writeRecord(outPath, rec); err != nil {
				log.Error("failed to write record", "path", outPath, "err", err)
				mu.Lock()
				summary.Failed++
				mu.Unlock()
				return
			}

			mu.Lock()
			summary.Processed++
			summary.TotalTimeSeconds += rec.ProcessingTimeSeconds
			summary.TotalCostUSD += rec.EstimatedCostUSD
			mu.Unlock()
		}(path)
	}

	wg.Wait()

	log.Info("batch complete",
		"processed", summary.Processed,
		"failed", summary.Failed,
		"wall_time", time.Since(start).Round(time.Millisecond),
		"total_cost_usd", summary.TotalCostUSD,
	)
	return &summary, ctx.Err()
}

func writeRecord(path string, rec any) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
