// Package service provides the dashboard service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/okian/launchboard/internal/adapters/render"
	"github.com/okian/launchboard/internal/adapters/repository"
	"github.com/okian/launchboard/internal/domain/model"
	"github.com/okian/launchboard/internal/domain/query"
	"github.com/okian/launchboard/internal/domain/types"
	"github.com/okian/launchboard/pkg/logger"
	"github.com/okian/launchboard/pkg/metrics"
)

// View names used for metrics and logs.
const (
	viewControls     = "controls"
	viewDistribution = "distribution"
	viewCorrelation  = "correlation"
)

// Service owns the launch table and answers the dashboard views.
//
// The table is loaded once by Start and never reloaded; picking up a new
// file requires a restart.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	engine   *query.Engine
	renderer *render.Renderer

	// Configuration
	dataPath    string
	sliderStep  float64
	groupBy     render.GroupFunc
	chartWidth  int
	chartHeight int
	loadOpts    []repository.Option
	preloaded   repository.Store

	// State
	started  bool
	loadedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDataPath sets the CSV file loaded by Start.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithDataset serves store instead of loading a file.
func WithDataset(store repository.Store) Option {
	return func(s *Service) {
		s.preloaded = store
	}
}

// WithLoadOptions passes CSV loader options through to the repository.
func WithLoadOptions(opts ...repository.Option) Option {
	return func(s *Service) {
		s.loadOpts = append(s.loadOpts, opts...)
	}
}

// WithSliderStep sets the payload range control step.
func WithSliderStep(step float64) Option {
	return func(s *Service) {
		if step > 0 {
			s.sliderStep = step
		}
	}
}

// WithColorBy sets how scatter points are grouped into colored series.
func WithColorBy(fn render.GroupFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.groupBy = fn
		}
	}
}

// WithChartSize sets the rendered chart size in pixels.
func WithChartSize(width, height int) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.chartWidth = width
			s.chartHeight = height
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath:    "spacex_launch_dash.csv",
		sliderStep:  query.DefaultStep,
		groupBy:     render.ByBoosterVersion,
		chartWidth:  900,
		chartHeight: 480,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the launch table and prepares the views.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting dashboard service...", logger.String("dataPath", s.dataPath))

	store := s.preloaded
	if store == nil {
		start := time.Now()
		ds, err := repository.LoadFile(ctx, s.dataPath, s.loadOpts...)
		if err != nil {
			return fmt.Errorf("load %s: %w", s.dataPath, err)
		}
		s.logger.Debug(ctx, "data file parsed", logger.Duration("took", time.Since(start)))
		store = ds
	}

	s.store = store
	s.engine = query.NewEngine(store, query.WithStep(s.sliderStep))
	s.renderer = render.New(
		render.WithSize(s.chartWidth, s.chartHeight),
		render.WithGroupBy(s.groupBy),
	)
	s.loadedAt = time.Now()
	s.started = true

	bounds := store.Bounds()
	records := store.Count(ctx)
	metrics.UpdateDatasetShape(records, len(store.Sites()), bounds.Min, bounds.Max)

	s.logger.Info(ctx, "dashboard service started",
		logger.Int("records", records),
		logger.Int("sites", len(store.Sites())),
		logger.Float64("payloadMin", bounds.Min),
		logger.Float64("payloadMax", bounds.Max),
	)

	return nil
}

// Stop marks the service stopped. It is safe to call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// ready returns the engine and renderer, or ErrNotStarted.
func (s *Service) ready() (*query.Engine, *render.Renderer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.engine, s.renderer, nil
}

// Controls describes the site selector and payload range control.
func (s *Service) Controls(ctx context.Context) (types.ControlSet, error) {
	engine, _, err := s.ready()
	if err != nil {
		return types.ControlSet{}, err
	}
	start := time.Now()
	cs := engine.Controls()
	metrics.RecordQuery(viewControls, elapsedMs(start))
	return cs, nil
}

// Bounds returns the global payload bounds.
func (s *Service) Bounds(_ context.Context) (model.Bounds, error) {
	engine, _, err := s.ready()
	if err != nil {
		return model.Bounds{}, err
	}
	return engine.Bounds(), nil
}

// Distribution computes the success distribution for site.
func (s *Service) Distribution(ctx context.Context, site string) (types.DistributionView, error) {
	engine, _, err := s.ready()
	if err != nil {
		return types.DistributionView{}, err
	}

	start := time.Now()
	slices := engine.Distribution(site)
	metrics.RecordQuery(viewDistribution, elapsedMs(start))
	if len(slices) == 0 {
		metrics.RecordEmptyView(viewDistribution)
		s.logger.Debug(ctx, "distribution matched no data", logger.String("site", site), logger.Bool("knownSite", engine.Known(site)))
	}

	return types.DistributionView{
		Site:   site,
		Title:  query.DistributionTitle(site),
		Slices: slices,
	}, nil
}

// Correlation computes the launches of site with payload mass in [lo, hi].
func (s *Service) Correlation(ctx context.Context, site string, lo, hi float64) (types.CorrelationView, error) {
	engine, _, err := s.ready()
	if err != nil {
		return types.CorrelationView{}, err
	}

	start := time.Now()
	launches := engine.Correlation(site, lo, hi)
	metrics.RecordQuery(viewCorrelation, elapsedMs(start))
	if len(launches) == 0 {
		metrics.RecordEmptyView(viewCorrelation)
		s.logger.Debug(ctx, "correlation matched no data",
			logger.String("site", site),
			logger.Float64("min", lo),
			logger.Float64("max", hi),
		)
	}

	return types.CorrelationView{
		Site:     site,
		Title:    query.CorrelationTitle(site),
		Min:      lo,
		Max:      hi,
		Launches: launches,
	}, nil
}

// RenderDistribution draws the distribution chart for site into w.
// An empty view returns render.ErrNoData.
func (s *Service) RenderDistribution(ctx context.Context, w io.Writer, site string, f render.Format) error {
	view, err := s.Distribution(ctx, site)
	if err != nil {
		return err
	}
	_, r, err := s.ready()
	if err != nil {
		return err
	}

	start := time.Now()
	err = r.Distribution(w, view.Title, view.Slices, f)
	return s.observeRender(ctx, viewDistribution, f, start, err)
}

// RenderCorrelation draws the correlation chart for site and [lo, hi] into w.
// An empty view returns render.ErrNoData.
func (s *Service) RenderCorrelation(ctx context.Context, w io.Writer, site string, lo, hi float64, f render.Format) error {
	view, err := s.Correlation(ctx, site, lo, hi)
	if err != nil {
		return err
	}
	_, r, err := s.ready()
	if err != nil {
		return err
	}

	start := time.Now()
	err = r.Correlation(w, view.Title, view.Launches, model.Bounds{Min: lo, Max: hi}, f)
	return s.observeRender(ctx, viewCorrelation, f, start, err)
}

func (s *Service) observeRender(ctx context.Context, chart string, f render.Format, start time.Time, err error) error {
	switch {
	case err == nil:
		metrics.RecordChartRender(chart, string(f), elapsedMs(start))
	case errors.Is(err, render.ErrNoData):
	default:
		metrics.RecordChartRenderError(chart)
		metrics.RecordErrorByComponent("render", chart)
		s.logger.Error(ctx, "chart render failed", logger.String("chart", chart), logger.Error(err))
	}
	return err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"dataPath":   s.dataPath,
		"sliderStep": s.sliderStep,
	}

	if s.started {
		bounds := s.store.Bounds()
		stats["records"] = s.store.Count(context.Background())
		stats["sites"] = s.store.Sites()
		stats["payloadMin"] = bounds.Min
		stats["payloadMax"] = bounds.Max
		stats["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
	}

	return stats
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
