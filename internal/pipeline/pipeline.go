// Package pipeline orchestrates per-document extraction: it fans out to the
// three collaborators, fuses their signals through the reconciler and
// validator, and projects the final record. The fusion step itself is pure
// and synchronous; only the provider calls touch the network.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/invofuse/invofuse/internal/extract"
	"github.com/invofuse/invofuse/internal/fields"
	"github.com/invofuse/invofuse/internal/masterlist"
	"github.com/invofuse/invofuse/internal/providers"
	"github.com/invofuse/invofuse/internal/reconcile"
	"github.com/invofuse/invofuse/internal/result"
	"github.com/invofuse/invofuse/internal/validate"
)

const (
	providerRetries   = 3
	providerRetryBase = 2 * time.Second

	defaultCostPerSecondUSD = 0.0003
)

// Config holds pipeline tuning knobs.
type Config struct {
	Workers          int     // batch worker pool size (default 4)
	CostPerSecondUSD float64 // compute cost estimate per processing second
}

// Pipeline processes documents. It holds only immutable state after
// construction and is safe for concurrent use by batch workers.
type Pipeline struct {
	log        *slog.Logger
	registry   *providers.Registry
	reconciler *reconcile.Reconciler
	validator  *validate.Validator
	cfg        Config
}

// New creates a Pipeline around the shared master list store.
func New(log *slog.Logger, registry *providers.Registry, masters *masterlist.Store, rcfg reconcile.Config, minConfidence float64, cfg Config) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.CostPerSecondUSD <= 0 {
		cfg.CostPerSecondUSD = defaultCostPerSecondUSD
	}
	return &Pipeline{
		log:        log,
		registry:   registry,
		reconciler: reconcile.New(masters, rcfg),
		validator:  validate.New(minConfidence),
		cfg:        cfg,
	}
}

// ProcessDocument runs the full pipeline for one document image or PDF.
func (p *Pipeline) ProcessDocument(ctx context.Context, path string) (*result.Record, error) {
	start := time.Now()
	docID := docIDFrom(path)

	image, err := loadDocumentImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	ocr, sec, det, err := p.callProviders(ctx, image)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	rec := p.Fuse(docID, ocr.FullText, sec, det, elapsed)

	p.log.Info("document processed",
		"doc_id", docID,
		"dealer_found", rec.Fields.DealerName != nil,
		"model_found", rec.Fields.ModelName != nil,
		"hp_found", rec.Fields.HorsePower != nil,
		"cost_found", rec.Fields.AssetCost != nil,
		"elapsed", elapsed.Round(time.Millisecond),
	)
	return &rec, nil
}

// Fuse runs the pure fusion core: candidate extraction, reconciliation,
// validation, and projection. It never fails; degraded inputs degrade to
// null fields.
func (p *Pipeline) Fuse(docID, ocrText string, sec *fields.Secondary, det *providers.DetectionResult, elapsed time.Duration) result.Record {
	if det == nil {
		det = &providers.DetectionResult{}
	}

	raw := validate.Raw{
		DealerName: p.reconciler.DealerName(extract.DealerCandidates(ocrText, sec)),
		ModelName:  p.reconciler.ModelName(extract.ModelCandidates(ocrText, sec)),
		HorsePower: p.reconciler.HorsePower(ocrText, sec),
		AssetCost:  p.reconciler.AssetCost(ocrText, sec),
		Signature:  det.Signature,
		Stamp:      det.Stamp,
	}

	validated := p.validator.Validate(raw)
	return result.Project(docID, validated, elapsed, elapsed.Seconds()*p.cfg.CostPerSecondUSD)
}

// callProviders fans out the three collaborator calls concurrently, each
// wrapped in a bounded retry. The OCR transcript and the detection payload
// are required; a VLM failure degrades to an empty secondary extraction
// rather than failing the document.
func (p *Pipeline) callProviders(ctx context.Context, image []byte) (*providers.OCRResult, *fields.Secondary, *providers.DetectionResult, error) {
	var (
		wg sync.WaitGroup

		ocr    *providers.OCRResult
		ocrErr error

		sec    *fields.Secondary
		secErr error

		det    *providers.DetectionResult
		detErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		ocrErr = withRetry(ctx, func() error {
			var err error
			ocr, err = p.registry.OCR.Recognize(ctx, image)
			return err
		})
	}()

	if p.registry.VLM != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			secErr = withRetry(ctx, func() error {
				var err error
				sec, err = p.registry.VLM.Extract(ctx, image)
				return err
			})
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		detErr = withRetry(ctx, func() error {
			var err error
			det, err = p.registry.Detector.Detect(ctx, image)
			return err
		})
	}()

	wg.Wait()

	if ocrErr != nil {
		return nil, nil, nil, fmt.Errorf("OCR failed: %w", ocrErr)
	}
	if detErr != nil {
		return nil, nil, nil, fmt.Errorf("detection failed: %w", detErr)
	}
	if secErr != nil {
		p.log.Warn("VLM extraction failed, continuing OCR-only", "err", secErr)
		sec = &fields.Secondary{}
	}
	if sec == nil {
		sec = &fields.Secondary{}
	}

	return ocr, sec, det, nil
}

func withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(providerRetries),
		retry.Delay(providerRetryBase),
	)
}

// docIDFrom derives the document identifier from the file name stem.
func docIDFrom(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
