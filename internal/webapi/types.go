package webapi

import (
	"encoding/json"
	"time"

	"github.com/spboyer/versus/internal/models"
)

// ReportSummary is the API response for a single report in the list.
// Metric names the headline figure: auc for classification, mae for regression.
type ReportSummary struct {
	ID        string       `json:"id"`
	Mode      models.Mode  `json:"mode"`
	Source    string       `json:"source,omitempty"`
	Rows      int          `json:"rows"`
	Metric    string       `json:"metric"`
	ModelA    models.Float `json:"modelA"`
	ModelB    models.Float `json:"modelB"`
	Winner    string       `json:"winner"`
	Timestamp time.Time    `json:"timestamp"`
}

// SummaryResponse aggregates headline metrics across all stored reports.
// Averages skip undefined (NaN) values and are null when nothing is left.
type SummaryResponse struct {
	TotalReports   int          `json:"totalReports"`
	Classification int          `json:"classification"`
	Regression     int          `json:"regression"`
	WinsA          int          `json:"winsA"`
	WinsB          int          `json:"winsB"`
	Ties           int          `json:"ties"`
	AvgAUCA        models.Float `json:"avgAucA"`
	AvgAUCB        models.Float `json:"avgAucB"`
	AvgMAEA        models.Float `json:"avgMaeA"`
	AvgMAEB        models.Float `json:"avgMaeB"`
}

// EvaluateRequest is the body of POST /api/evaluate/{mode}. Options fields
// that are present override the server's configured defaults.
type EvaluateRequest struct {
	CSV     string          `json:"csv"`
	Source  string          `json:"source,omitempty"`
	Options json.RawMessage `json:"options,omitempty"`
	Save    bool            `json:"save,omitempty"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
