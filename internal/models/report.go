package models

import "time"

// Mode names the kind of evaluation a table is read as.
type Mode string

const (
	ModeClassification Mode = "classification"
	ModeRegression     Mode = "regression"
)

// Conventions records which of the configurable rules produced a report.
type Conventions struct {
	PositiveRule    string `json:"positive_rule,omitempty"`
	Boundary        string `json:"boundary,omitempty"`
	Correctness     string `json:"correctness,omitempty"`
	AUCTies         string `json:"auc_ties,omitempty"`
	MAPEDenominator string `json:"mape_denominator,omitempty"`
}

// RateSummary holds rates derived from an exact-mode confusion matrix,
// rounded to four decimal places.
type RateSummary struct {
	Precision   float64 `json:"precision"`
	Recall      float64 `json:"recall"`
	Specificity float64 `json:"specificity"`
	F1          float64 `json:"f1"`
	Accuracy    float64 `json:"accuracy"`
}

// ClassificationResult is everything computed for one classification model.
type ClassificationResult struct {
	Matrix  ConfusionMatrix `json:"matrix"`
	Summary RateSummary     `json:"summary"`
	ROC     Curve           `json:"roc"`
	AUC     Float           `json:"auc"`
}

// ClassificationReport is the full classification evaluation of both models.
type ClassificationReport struct {
	ID          string                     `json:"id"`
	Source      string                     `json:"source,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
	Mode        Mode                       `json:"mode"`
	Rows        int                        `json:"rows"`
	Labels      LabelSet                   `json:"labels"`
	Conventions Conventions                `json:"conventions"`
	Models      Pair[ClassificationResult] `json:"models"`
}

// RegressionResult holds the error statistics of one regression model.
type RegressionResult struct {
	MAE  Float `json:"mae"`
	MAPE Float `json:"mape"`
	MSE  Float `json:"mse"`
}

// RegressionReport is the full regression evaluation of both models.
type RegressionReport struct {
	ID          string                 `json:"id"`
	Source      string                 `json:"source,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	Mode        Mode                   `json:"mode"`
	Rows        int                    `json:"rows"`
	Conventions Conventions            `json:"conventions"`
	Models      Pair[RegressionResult] `json:"models"`
}

// Report is the envelope persisted to disk and served over HTTP. Exactly one
// of Classification and Regression is set, matching Mode.
type Report struct {
	Mode           Mode                  `json:"mode"`
	Classification *ClassificationReport `json:"classification,omitempty"`
	Regression     *RegressionReport     `json:"regression,omitempty"`
}

// ReportID returns the ID of whichever report the envelope holds.
func (r *Report) ReportID() string {
	switch {
	case r.Classification != nil:
		return r.Classification.ID
	case r.Regression != nil:
		return r.Regression.ID
	}
	return ""
}

// Timestamp returns the creation time of whichever report the envelope holds.
func (r *Report) Timestamp() time.Time {
	switch {
	case r.Classification != nil:
		return r.Classification.CreatedAt
	case r.Regression != nil:
		return r.Regression.CreatedAt
	}
	return time.Time{}
}

// SourceName returns the input name of whichever report the envelope holds.
func (r *Report) SourceName() string {
	switch {
	case r.Classification != nil:
		return r.Classification.Source
	case r.Regression != nil:
		return r.Regression.Source
	}
	return ""
}

// SetSource records the input name on whichever report the envelope holds.
func (r *Report) SetSource(source string) {
	switch {
	case r.Classification != nil:
		r.Classification.Source = source
	case r.Regression != nil:
		r.Regression.Source = source
	}
}
