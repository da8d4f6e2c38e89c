package webapi

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spboyer/versus/internal/models"
	"github.com/spboyer/versus/internal/reporting"
)

// ErrReportNotFound is returned when a report ID does not match any stored report.
var ErrReportNotFound = errors.New("report not found")

// ReportStore provides access to saved evaluation reports.
type ReportStore interface {
	// ListReports returns all reports, sorted by the given field and order.
	ListReports(sortField, order string) ([]ReportSummary, error)
	// GetReport returns a single report in full.
	GetReport(id string) (*models.Report, error)
	// Summary returns aggregate metrics across all reports.
	Summary() (*SummaryResponse, error)
	// SaveReport persists a report so later listings include it.
	SaveReport(report *models.Report) error
}

// FileStore reads and writes Report JSON files in a directory.
type FileStore struct {
	dir string

	mu      sync.RWMutex
	reports map[string]*models.Report
	loaded  bool
}

// NewFileStore creates a FileStore backed by dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:     dir,
		reports: make(map[string]*models.Report),
	}
}

// Dir returns the directory the store reads from.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// load reads all report JSON files from the configured directory. Files
// that are not reports are skipped.
func (fs *FileStore) load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.reports = make(map[string]*models.Report)

	if fs.dir == "" {
		fs.loaded = true
		return nil
	}

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			fs.loaded = true
			return nil
		}
		return err
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fs.dir, e.Name()))
		if err != nil {
			continue
		}
		var report models.Report
		if err := json.Unmarshal(data, &report); err != nil {
			continue
		}
		if report.Classification == nil && report.Regression == nil {
			continue
		}
		id := report.ReportID()
		if id == "" {
			// Use filename (without extension) as fallback ID.
			id = strings.TrimSuffix(e.Name(), ".json")
			setReportID(&report, id)
		}
		fs.reports[id] = &report
	}

	fs.loaded = true
	return nil
}

// ensureLoaded loads data if not already loaded.
func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		fs.mu.RUnlock()
		return nil
	}
	fs.mu.RUnlock()
	return fs.load()
}

// Reload forces a fresh reload of all report files from disk.
func (fs *FileStore) Reload() error {
	return fs.load()
}

// ListReports returns all reports sorted by the given field and order.
func (fs *FileStore) ListReports(sortField, order string) ([]ReportSummary, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	list := make([]ReportSummary, 0, len(fs.reports))
	for _, r := range fs.reports {
		list = append(list, toSummary(r))
	}

	sortReports(list, sortField, order)
	return list, nil
}

// GetReport returns a single report.
func (fs *FileStore) GetReport(id string) (*models.Report, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	r, ok := fs.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return r, nil
}

// Summary returns aggregate metrics across all reports.
func (fs *FileStore) Summary() (*SummaryResponse, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return summarize(fs.reports), nil
}

// SaveReport writes report to <dir>/<id>.json and adds it to the index.
func (fs *FileStore) SaveReport(report *models.Report) error {
	id := report.ReportID()
	if id == "" {
		return errors.New("report has no id")
	}
	if fs.dir == "" {
		return errors.New("report store has no directory")
	}
	if err := fs.ensureLoaded(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report %s: %w", id, err)
	}
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return fmt.Errorf("creating results directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(fs.dir, id+".json"), data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", id, err)
	}

	fs.mu.Lock()
	fs.reports[id] = report
	fs.mu.Unlock()
	return nil
}

func setReportID(r *models.Report, id string) {
	switch {
	case r.Classification != nil:
		r.Classification.ID = id
	case r.Regression != nil:
		r.Regression.ID = id
	}
}

// headline returns the metric a report is listed by and which direction is better.
func headline(r *models.Report) (metric string, a, b models.Float, higherIsBetter bool) {
	switch {
	case r.Classification != nil:
		m := r.Classification.Models
		return "auc", m.A.AUC, m.B.AUC, true
	case r.Regression != nil:
		m := r.Regression.Models
		return "mae", m.A.MAE, m.B.MAE, false
	}
	return "", models.NaN(), models.NaN(), true
}

func toSummary(r *models.Report) ReportSummary {
	metric, a, b, higher := headline(r)
	return ReportSummary{
		ID:        r.ReportID(),
		Mode:      r.Mode,
		Source:    r.SourceName(),
		Rows:      reportRows(r),
		Metric:    metric,
		ModelA:    a,
		ModelB:    b,
		Winner:    reporting.Winner(float64(a), float64(b), higher),
		Timestamp: r.Timestamp(),
	}
}

func reportRows(r *models.Report) int {
	switch {
	case r.Classification != nil:
		return r.Classification.Rows
	case r.Regression != nil:
		return r.Regression.Rows
	}
	return 0
}

// mean averages the finite values; NaN when there are none.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v models.Float) {
	if v.IsFinite() {
		m.sum += float64(v)
		m.n++
	}
}

func (m mean) value() models.Float {
	if m.n == 0 {
		return models.NaN()
	}
	return models.Float(m.sum / float64(m.n))
}

func summarize(reports map[string]*models.Report) *SummaryResponse {
	resp := &SummaryResponse{}
	var aucA, aucB, maeA, maeB mean

	for _, r := range reports {
		resp.TotalReports++
		switch {
		case r.Classification != nil:
			resp.Classification++
			aucA.add(r.Classification.Models.A.AUC)
			aucB.add(r.Classification.Models.B.AUC)
		case r.Regression != nil:
			resp.Regression++
			maeA.add(r.Regression.Models.A.MAE)
			maeB.add(r.Regression.Models.B.MAE)
		}

		switch toSummary(r).Winner {
		case reporting.WinnerA:
			resp.WinsA++
		case reporting.WinnerB:
			resp.WinsB++
		case reporting.WinnerTie:
			resp.Ties++
		}
	}

	resp.AvgAUCA, resp.AvgAUCB = aucA.value(), aucB.value()
	resp.AvgMAEA, resp.AvgMAEB = maeA.value(), maeB.value()
	return resp
}

// sortReports orders by timestamp (default), rows, or the headline metric.
// NaN metrics sort first in ascending order.
func sortReports(list []ReportSummary, field, order string) {
	compare := func(x, y ReportSummary) int {
		switch field {
		case "rows":
			return cmp.Compare(x.Rows, y.Rows)
		case "model_a":
			return cmp.Compare(float64(x.ModelA), float64(y.ModelA))
		case "model_b":
			return cmp.Compare(float64(x.ModelB), float64(y.ModelB))
		default: // "timestamp" or empty
			return x.Timestamp.Compare(y.Timestamp)
		}
	}

	if order == "asc" {
		slices.SortStableFunc(list, func(x, y ReportSummary) int {
			return cmp.Or(compare(x, y), strings.Compare(x.ID, y.ID))
		})
		return
	}
	slices.SortStableFunc(list, func(x, y ReportSummary) int {
		return cmp.Or(compare(y, x), strings.Compare(x.ID, y.ID))
	})
}

// Ensure FileStore satisfies ReportStore.
var _ ReportStore = (*FileStore)(nil)
