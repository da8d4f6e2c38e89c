// Package evaluation exposes the two-model comparison operations over raw CSV
// text: header row first, then one data row per observation.
package evaluation

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spboyer/versus/internal/cache"
	"github.com/spboyer/versus/internal/dataset"
	"github.com/spboyer/versus/internal/metrics"
	"github.com/spboyer/versus/internal/models"
)

// ErrEmptyInput is returned when the input holds no data rows after the header.
var ErrEmptyInput = errors.New("input has no data rows")

// Service runs evaluations. It holds no per-call state and is safe for
// concurrent use.
type Service struct {
	cache  *cache.Cache
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithCache makes Classification and Regression reuse reports computed for
// identical input and options. A reused report gets a new ID and timestamp.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service.
func New(opts ...Option) *Service {
	s := &Service{
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Headers returns the header row of input.
func (s *Service) Headers(input string) ([]string, error) {
	table, err := dataset.ParseString(input)
	if err != nil {
		return nil, err
	}
	return table.Headers, nil
}

// Records returns the data rows of input as raw strings.
func (s *Service) Records(input string) ([][]string, error) {
	table, err := dataset.ParseString(input)
	if err != nil {
		return nil, err
	}
	return table.Records, nil
}

// ConfusionMatrix returns each model's exact-mode confusion matrix.
// The truth column must hold exactly two distinct values.
func (s *Service) ConfusionMatrix(input string, opts Options) (models.Pair[models.ConfusionMatrix], error) {
	set, _, err := s.classificationSet(input, opts, false)
	if err != nil {
		return models.Pair[models.ConfusionMatrix]{}, err
	}
	a, b := metrics.ConfusionMatrices(set)
	return models.PairOf(a, b), nil
}

// ROCCurve returns each model's 100-point ROC curve in threshold order.
// A truth column with a single distinct value is accepted; rates whose
// denominator is zero are NaN.
func (s *Service) ROCCurve(input string, opts Options) (models.Pair[models.Curve], error) {
	curves, _, err := s.rocCurves(input, opts)
	return curves, err
}

// AUC returns the area under each model's ROC curve.
func (s *Service) AUC(input string, opts Options) (models.Pair[models.Float], error) {
	curves, opts, err := s.rocCurves(input, opts)
	if err != nil {
		return models.Pair[models.Float]{}, err
	}
	return models.FloatPair(metrics.AUCs(curves.A, curves.B, opts.Correctness.Ties())), nil
}

func (s *Service) rocCurves(input string, opts Options) (models.Pair[models.Curve], Options, error) {
	set, opts, err := s.classificationSet(input, opts, true)
	if err != nil {
		return models.Pair[models.Curve]{}, opts, err
	}
	a, b := metrics.ROCCurves(set, opts.sweepOptions())
	return models.PairOf(a, b), opts, nil
}

// MAE returns each model's mean absolute error.
func (s *Service) MAE(input string, opts Options) (models.Pair[models.Float], error) {
	rows, _, err := s.regressionRows(input, opts)
	if err != nil {
		return models.Pair[models.Float]{}, err
	}
	return models.FloatPair(metrics.MAE(rows)), nil
}

// MAPE returns each model's mean absolute percentage error, as a percentage.
func (s *Service) MAPE(input string, opts Options) (models.Pair[models.Float], error) {
	rows, opts, err := s.regressionRows(input, opts)
	if err != nil {
		return models.Pair[models.Float]{}, err
	}
	return models.FloatPair(metrics.MAPE(rows, opts.MAPEDenominator)), nil
}

// MSE returns each model's mean squared error.
func (s *Service) MSE(input string, opts Options) (models.Pair[models.Float], error) {
	rows, _, err := s.regressionRows(input, opts)
	if err != nil {
		return models.Pair[models.Float]{}, err
	}
	return models.FloatPair(metrics.MSE(rows)), nil
}

// Classification computes every classification result for both models.
func (s *Service) Classification(input string, opts Options) (*models.ClassificationReport, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	key := s.cacheKey(models.ModeClassification, input, opts)
	if r, ok := s.cached(key); ok && r.Classification != nil {
		report := *r.Classification
		report.ID, report.CreatedAt = s.newID(), s.now().UTC()
		return &report, nil
	}

	set, opts, err := s.classificationSet(input, opts, false)
	if err != nil {
		return nil, err
	}

	ma, mb := metrics.ConfusionMatrices(set)
	rocA, rocB := metrics.ROCCurves(set, opts.sweepOptions())
	aucA, aucB := metrics.AUCs(rocA, rocB, opts.Correctness.Ties())

	report := &models.ClassificationReport{
		ID:          s.newID(),
		CreatedAt:   s.now().UTC(),
		Mode:        models.ModeClassification,
		Rows:        len(set.Rows),
		Labels:      set.Labels,
		Conventions: opts.classificationConventions(),
		Models: models.PairOf(
			models.ClassificationResult{Matrix: ma, Summary: metrics.Summarize(ma), ROC: rocA, AUC: models.Float(aucA)},
			models.ClassificationResult{Matrix: mb, Summary: metrics.Summarize(mb), ROC: rocB, AUC: models.Float(aucB)},
		),
	}

	s.store(key, &models.Report{Mode: models.ModeClassification, Classification: report})
	return report, nil
}

// Regression computes every regression result for both models.
func (s *Service) Regression(input string, opts Options) (*models.RegressionReport, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	key := s.cacheKey(models.ModeRegression, input, opts)
	if r, ok := s.cached(key); ok && r.Regression != nil {
		report := *r.Regression
		report.ID, report.CreatedAt = s.newID(), s.now().UTC()
		return &report, nil
	}

	rows, opts, err := s.regressionRows(input, opts)
	if err != nil {
		return nil, err
	}

	maeA, maeB := metrics.MAE(rows)
	mapeA, mapeB := metrics.MAPE(rows, opts.MAPEDenominator)
	mseA, mseB := metrics.MSE(rows)

	report := &models.RegressionReport{
		ID:          s.newID(),
		CreatedAt:   s.now().UTC(),
		Mode:        models.ModeRegression,
		Rows:        len(rows),
		Conventions: opts.regressionConventions(),
		Models: models.PairOf(
			models.RegressionResult{MAE: models.Float(maeA), MAPE: models.Float(mapeA), MSE: models.Float(mseA)},
			models.RegressionResult{MAE: models.Float(maeB), MAPE: models.Float(mapeB), MSE: models.Float(mseB)},
		),
	}

	s.store(key, &models.Report{Mode: models.ModeRegression, Regression: report})
	return report, nil
}

// Evaluate runs the evaluation for mode and wraps the result in a Report envelope.
func (s *Service) Evaluate(mode models.Mode, input string, opts Options) (*models.Report, error) {
	switch mode {
	case models.ModeClassification:
		r, err := s.Classification(input, opts)
		if err != nil {
			return nil, err
		}
		return &models.Report{Mode: mode, Classification: r}, nil
	case models.ModeRegression:
		r, err := s.Regression(input, opts)
		if err != nil {
			return nil, err
		}
		return &models.Report{Mode: mode, Regression: r}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q: must be %s or %s", mode, models.ModeClassification, models.ModeRegression)
	}
}

func (s *Service) records(input string) ([][]string, error) {
	table, err := dataset.ParseString(input)
	if err != nil {
		return nil, err
	}
	if len(table.Records) == 0 {
		return nil, ErrEmptyInput
	}
	return table.Records, nil
}

// classificationSet parses input into rows and a label set. oneClass accepts
// a truth column with a single distinct value.
func (s *Service) classificationSet(input string, opts Options, oneClass bool) (*models.ClassificationSet, Options, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, opts, err
	}
	records, err := s.records(input)
	if err != nil {
		return nil, opts, err
	}
	labelOpts := opts.labelOptions()
	labelOpts.AllowOneClass = oneClass
	set, err := models.ParseClassificationRows(records, labelOpts)
	if err != nil {
		return nil, opts, fmt.Errorf("classification input: %w", err)
	}
	s.logger.Debug("parsed classification rows", "rows", len(set.Rows),
		"positive", set.Labels.Positive, "negative", set.Labels.Negative)
	return set, opts, nil
}

func (s *Service) regressionRows(input string, opts Options) ([]models.RegressionRow, Options, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, opts, err
	}
	records, err := s.records(input)
	if err != nil {
		return nil, opts, err
	}
	rows, err := models.ParseRegressionRows(records)
	if err != nil {
		return nil, opts, fmt.Errorf("regression input: %w", err)
	}
	s.logger.Debug("parsed regression rows", "rows", len(rows))
	return rows, opts, nil
}

func (s *Service) cacheKey(mode models.Mode, input string, opts Options) string {
	if s.cache == nil {
		return ""
	}
	key, err := cache.Key(mode, input, opts.cacheFields(mode)...)
	if err != nil {
		s.logger.Debug("cache key failed", "error", err)
		return ""
	}
	return key
}

func (s *Service) cached(key string) (*models.Report, bool) {
	if key == "" {
		return nil, false
	}
	r, ok := s.cache.Get(key)
	if ok {
		s.logger.Debug("cache hit", "key", key)
	}
	return r, ok
}

func (s *Service) store(key string, r *models.Report) {
	if key == "" {
		return
	}
	if err := s.cache.Put(key, r); err != nil {
		s.logger.Warn("failed to write cache entry", "error", err)
	}
}
