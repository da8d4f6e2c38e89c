package jsonrpc

import (
	"github.com/spboyer/versus/internal/evaluation"
	"github.com/spboyer/versus/internal/models"
)

//go:generate go tool mockgen -source=evaluator.go -destination=mock_evaluator_test.go -package=jsonrpc

// Evaluator is the set of evaluation operations exposed over JSON-RPC.
// *evaluation.Service implements it.
type Evaluator interface {
	Headers(input string) ([]string, error)
	Records(input string) ([][]string, error)
	ConfusionMatrix(input string, opts evaluation.Options) (models.Pair[models.ConfusionMatrix], error)
	ROCCurve(input string, opts evaluation.Options) (models.Pair[models.Curve], error)
	AUC(input string, opts evaluation.Options) (models.Pair[models.Float], error)
	MAE(input string, opts evaluation.Options) (models.Pair[models.Float], error)
	MAPE(input string, opts evaluation.Options) (models.Pair[models.Float], error)
	MSE(input string, opts evaluation.Options) (models.Pair[models.Float], error)
	Classification(input string, opts evaluation.Options) (*models.ClassificationReport, error)
	Regression(input string, opts evaluation.Options) (*models.RegressionReport, error)
}

var _ Evaluator = (*evaluation.Service)(nil)
