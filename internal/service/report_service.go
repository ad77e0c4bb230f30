package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"path"
	"strings"
	"time"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/cache"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/export"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/reorder"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

const (
	msgReportGenerated     = "Reorder report generated successfully!"
	msgSimulationGenerated = "Simulation report generated successfully!"
)

// SimulationRequest asks for a demand spike on one product. A zero Multiplier
// falls back to the configured default.
type SimulationRequest struct {
	Active     bool    `json:"active"`
	ProductID  string  `json:"product_id"`
	Multiplier float64 `json:"multiplier"`
}

// Report is a freshly generated reorder report.
type Report struct {
	Entries     []reorder.ReportEntry `json:"entries"`
	Summary     reorder.ReportSummary `json:"summary"`
	Simulating  bool                  `json:"simulating"`
	Simulation  *reorder.Simulation   `json:"simulation,omitempty"`
	Message     string                `json:"message"`
	GeneratedAt time.Time             `json:"generated_at"`
}

type ReportOptions struct {
	DefaultMultiplier float64
	ExportPrefix      string
}

type ReportService struct {
	repo    repository.ProductRepository
	cache   cache.ReportCache
	storage storage.ObjectStorage
	opts    ReportOptions
	now     func() time.Time
}

// NewReportService wires the report generator. store may be nil, in which case Export is unavailable.
func NewReportService(repo repository.ProductRepository, cacheImpl cache.ReportCache, store storage.ObjectStorage, opts ReportOptions) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	if opts.DefaultMultiplier <= 0 {
		opts.DefaultMultiplier = reorder.DefaultSimulationMultiplier
	}
	return &ReportService{repo: repo, cache: cacheImpl, storage: store, opts: opts, now: time.Now}
}

func (s *ReportService) Generate(ctx context.Context, req SimulationRequest) (*Report, error) {
	sim, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries(ctx, sim)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Entries:     entries,
		Summary:     reorder.Summarize(entries),
		Simulating:  sim.Active,
		Message:     msgReportGenerated,
		GeneratedAt: s.now().UTC(),
	}
	if sim.Active {
		report.Simulation = &sim
		report.Message = msgSimulationGenerated
	}
	return report, nil
}

// WriteCSV renders the report for req to w.
func (s *ReportService) WriteCSV(ctx context.Context, w io.Writer, req SimulationRequest) error {
	report, err := s.Generate(ctx, req)
	if err != nil {
		return err
	}
	return export.WriteReportCSV(w, report.Entries, report.Simulating)
}

// Export uploads the CSV report to object storage and returns its key.
func (s *ReportService) Export(ctx context.Context, req SimulationRequest) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("%w: object storage is not configured", domain.ErrInvalidInput)
	}

	var buf bytes.Buffer
	if err := s.WriteCSV(ctx, &buf, req); err != nil {
		return "", err
	}

	key := s.exportKey(req.Active)
	if err := s.storage.UploadObject(ctx, key, buf.Bytes()); err != nil {
		log.Error().Err(err).Str("key", key).Msg("reorder report: export upload failed")
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	log.Info().Str("key", key).Int("bytes", buf.Len()).Msg("reorder report exported")
	return key, nil
}

func (s *ReportService) exportKey(simulating bool) string {
	name := "reorder"
	if simulating {
		name = "simulation"
	}
	file := fmt.Sprintf("%s_%s.csv", name, s.now().UTC().Format("20060102T150405Z"))
	return path.Join(strings.Trim(s.opts.ExportPrefix, "/"), file)
}

// entries is cache-aside keyed on the cache version read before the snapshot,
// so a report built from a snapshot that was invalidated meanwhile is stored
// under a version nobody reads again.
func (s *ReportService) entries(ctx context.Context, sim reorder.Simulation) ([]reorder.ReportEntry, error) {
	version, err := s.cache.Version(ctx)
	cacheable := err == nil
	if err != nil {
		log.Warn().Err(err).Msg("reorder report: cache version failed")
	}

	if cacheable {
		if entries, ok, err := s.cache.Get(ctx, version, sim); err == nil && ok {
			return entries, nil
		} else if err != nil {
			log.Warn().Err(err).Msg("reorder report: cache get failed")
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := reorder.GenerateReport(products, sim)

	if cacheable {
		if err := s.cache.Set(ctx, version, sim, entries); err != nil {
			log.Warn().Err(err).Msg("reorder report: cache set failed")
		}
	}
	return entries, nil
}

// resolve validates a host request into engine parameters.
func (s *ReportService) resolve(ctx context.Context, req SimulationRequest) (reorder.Simulation, error) {
	if !req.Active {
		return reorder.Simulation{}, nil
	}

	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		return reorder.Simulation{}, domain.ErrSimulationProductRequired
	}

	multiplier := req.Multiplier
	if multiplier == 0 {
		multiplier = s.opts.DefaultMultiplier
	}
	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) || multiplier < 1 {
		return reorder.Simulation{}, fmt.Errorf("%w: multiplier must be a finite number >= 1", domain.ErrInvalidInput)
	}

	product, err := s.repo.Get(ctx, productID)
	if err != nil {
		return reorder.Simulation{}, err
	}
	if product.AverageDailySales*multiplier*reorder.FutureSalesCoverageDays > reorder.MaxOrderQuantity {
		return reorder.Simulation{}, fmt.Errorf("%w: multiplier %g projects more than %d units for %s",
			domain.ErrInvalidInput, multiplier, reorder.MaxOrderQuantity, productID)
	}

	return reorder.Simulation{Active: true, ProductID: productID, Multiplier: multiplier}, nil
}
