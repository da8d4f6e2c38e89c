package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/versus/internal/evaluation"
	"github.com/spboyer/versus/internal/models"
)

// HandlerContext provides shared state for method handlers.
type HandlerContext struct {
	eval Evaluator

	// defaults are the options every request starts from; a request's
	// "options" object overrides individual fields.
	defaults evaluation.Options
}

// NewHandlerContext creates a new handler context.
func NewHandlerContext(eval Evaluator, defaults evaluation.Options) *HandlerContext {
	return &HandlerContext{eval: eval, defaults: defaults}
}

// RegisterHandlers registers all csv/classification/regression method handlers.
func RegisterHandlers(registry *MethodRegistry, hctx *HandlerContext) {
	registry.Register("csv.parse", hctx.handleCSVParse)
	registry.Register("csv.headers", hctx.handleCSVHeaders)
	registry.Register("classification.matrix", hctx.handleClassificationMatrix)
	registry.Register("classification.roc", hctx.handleClassificationROC)
	registry.Register("classification.auc", hctx.handleClassificationAUC)
	registry.Register("classification.report", hctx.handleClassificationReport)
	registry.Register("regression.mae", hctx.handleRegressionMAE)
	registry.Register("regression.mape", hctx.handleRegressionMAPE)
	registry.Register("regression.mse", hctx.handleRegressionMSE)
	registry.Register("regression.report", hctx.handleRegressionReport)
	registry.Register("rpc.methods", func(context.Context, json.RawMessage) (any, *Error) {
		return &MethodsResult{Methods: registry.Methods()}, nil
	})
}

// InputParams is accepted by every method: the table inline ("csv") or on
// disk ("path"), plus optional evaluation options.
type InputParams struct {
	CSV     string         `json:"csv,omitempty"`
	Path    string         `json:"path,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

// HeadersResult is returned by csv.headers.
type HeadersResult struct {
	Headers []string `json:"headers"`
}

// RecordsResult is returned by csv.parse.
type RecordsResult struct {
	Records [][]string `json:"records"`
}

// MethodsResult is returned by rpc.methods.
type MethodsResult struct {
	Methods []string `json:"methods"`
}

// ValidationDetail is the data attached to a CodeValidationFailed error.
type ValidationDetail struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Row     *int   `json:"row,omitempty"`
	Column  *int   `json:"column,omitempty"`
}

// decodeInput parses params, resolves the input text and overlays request
// options onto the defaults.
func (h *HandlerContext) decodeInput(params json.RawMessage) (string, evaluation.Options, *Error) {
	opts := h.defaults

	var p InputParams
	if len(params) == 0 {
		return "", opts, ErrInvalidParams("csv or path is required")
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return "", opts, ErrInvalidParams(err.Error())
	}

	if p.Options != nil {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &opts,
			ErrorUnused: true,
		})
		if err != nil {
			return "", opts, ErrInternalError(err.Error())
		}
		if err := dec.Decode(p.Options); err != nil {
			return "", opts, ErrInvalidParams(err.Error())
		}
	}

	switch {
	case p.CSV != "" && p.Path != "":
		return "", opts, ErrInvalidParams("csv and path are mutually exclusive")
	case p.CSV != "":
		return p.CSV, opts, nil
	case p.Path != "":
		data, err := os.ReadFile(p.Path)
		if errors.Is(err, os.ErrNotExist) {
			return "", opts, ErrFileNotFound(p.Path)
		}
		if err != nil {
			return "", opts, ErrInternalError(err.Error())
		}
		return string(data), opts, nil
	default:
		return "", opts, ErrInvalidParams("csv or path is required")
	}
}

// evaluationError maps an evaluator failure onto a JSON-RPC error. Every
// failure of the evaluator is a rejection of the caller's input.
func evaluationError(err error) *Error {
	detail := ValidationDetail{Message: err.Error()}

	switch {
	case errors.Is(err, models.ErrFieldCount):
		detail.Kind = "field_count"
	case errors.Is(err, models.ErrNumeric):
		detail.Kind = "numeric"
	case errors.Is(err, models.ErrLabelSet):
		detail.Kind = "label_set"
	case errors.Is(err, evaluation.ErrEmptyInput):
		detail.Kind = "empty_input"
	}

	var pe *models.ParseError
	if errors.As(err, &pe) {
		row := pe.Row
		detail.Row = &row
		if pe.Column >= 0 {
			col := pe.Column
			detail.Column = &col
		}
	}

	return ErrValidationFailed(detail)
}

// run is the shared shape of every handler: decode, check for cancellation,
// evaluate.
func run[T any](ctx context.Context, h *HandlerContext, params json.RawMessage, fn func(string, evaluation.Options) (T, error)) (any, *Error) {
	input, opts, rpcErr := h.decodeInput(params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := ctx.Err(); err != nil {
		return nil, ErrInternalError(err.Error())
	}
	result, err := fn(input, opts)
	if err != nil {
		return nil, evaluationError(err)
	}
	return result, nil
}

// --- csv.* ---

func (h *HandlerContext) handleCSVParse(ctx context.Context, params json.RawMessage) (any, *Error) {
	return run(ctx, h, params, func(input string, _ evaluation.Options) (*RecordsResult, error) {
		records, err := h.eval.Records(input)
		if err != nil {
			return nil, err
		}
		return &RecordsResult{Records: records}, nil
	})
}

func (h *HandlerContext) handleCSVHeaders(ctx context.Context, params json.RawMessage) (any, *Error) {
	return run(ctx, h, params, func(input string, _ evaluation.Options) (*HeadersResult, error) {
		headers, err := h.eval.Headers(input)
		if err != nil {
			return nil, err
		}
		return &HeadersResult{Headers: headers}, nil
	})
}

// --- classification.* ---

func (h *HandlerContext) handleClassificationMatrix(ctx context.Context, params json.RawMessage) (any, *Error) {
	return run(ctx, h, params, h.eval.ConfusionMatrix)
}

func (h *HandlerContext) handleClassificationROC(ctx context.Context, params json.RawMessage) (any, *Error) {
	return run(ctx, h, params, h.eval.ROCCurve)
}

func (h *HandlerContext) handleClassificationAUC(ctx context.Context, params json.RawMessage) (any, *Error) {
	return run(ctx, h, params, h.eval.AUC)
}

func (h *HandlerContext) handleClassificationReport(ctx context.Context, params json.RawMessage) (any, *Error) {
	return run(ctx, h, params, h.eval.Classification)
}

// --- regression.* ---

func (h *HandlerContext) handleRegressionMAE(ctx context.Context, params json.RawMessage) (any, *Error) {
	return run(ctx, h, params, h.eval.MAE)
}

func (h *HandlerContext) handleRegressionMAPE(ctx context.Context, params json.RawMessage) (any, *Error) {
	return run(ctx, h, params, h.eval.MAPE)
}

func (h *HandlerContext) handleRegressionMSE(ctx context.Context, params json.RawMessage) (any, *Error) {
	return run(ctx, h, params, h.eval.MSE)
}

func (h *HandlerContext) handleRegressionReport(ctx context.Context, params json.RawMessage) (any, *Error) {
	return run(ctx, h, params, h.eval.Regression)
}
