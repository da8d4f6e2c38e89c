package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spboyer/versus/internal/evaluation"
	"github.com/spboyer/versus/internal/metrics"
	"github.com/spboyer/versus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const regressionCSV = "truth,pred_a,pred_b\n10,12,8\n20,18,25\n"

// helper to send a JSON-RPC request and decode the response
func rpcCall(t *testing.T, server *Server, method string, params any) Response {
	t.Helper()
	paramsJSON, err := json.Marshal(params)
	require.NoError(t, err)

	reqLine := fmt.Sprintf(`{"jsonrpc":"2.0","method":"%s","params":%s,"id":1}`, method, string(paramsJSON))
	var out bytes.Buffer
	server.ServeStdio(context.Background(), strings.NewReader(reqLine+"\n"), &out)

	var resp Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	return resp
}

// decodeResult re-marshals resp.Result into dst.
func decodeResult(t *testing.T, resp Response, dst any) {
	t.Helper()
	require.Nil(t, resp.Error)
	data, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, dst))
}

func newTestServer(eval Evaluator, defaults evaluation.Options) *Server {
	registry := NewMethodRegistry()
	RegisterHandlers(registry, NewHandlerContext(eval, defaults))
	return NewServer(registry, nil)
}

func newMockServer(t *testing.T) (*MockEvaluator, *Server) {
	ctrl := gomock.NewController(t)
	mock := NewMockEvaluator(ctrl)
	return mock, newTestServer(mock, evaluation.Options{})
}

func TestHandler_AllMethodsRegistered(t *testing.T) {
	_, server := newMockServer(t)
	resp := rpcCall(t, server, "rpc.methods", map[string]any{})

	var result MethodsResult
	decodeResult(t, resp, &result)
	assert.Equal(t, []string{
		"classification.auc",
		"classification.matrix",
		"classification.report",
		"classification.roc",
		"csv.headers",
		"csv.parse",
		"regression.mae",
		"regression.mape",
		"regression.mse",
		"regression.report",
		"rpc.methods",
	}, result.Methods)
}

func TestHandler_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params any
	}{
		{"not an object", "not an object"},
		{"no input", map[string]any{}},
		{"both inputs", map[string]any{"csv": "a,b\n", "path": "x.csv"}},
		{"unknown option", map[string]any{"csv": "a,b\n", "options": map[string]any{"colour": "red"}}},
		{"option of wrong type", map[string]any{"csv": "a,b\n", "options": map[string]any{"workers": "many"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No expectations: the evaluator must not be reached.
			_, server := newMockServer(t)
			resp := rpcCall(t, server, "classification.auc", tt.params)
			require.NotNil(t, resp.Error)
			assert.Equal(t, CodeInvalidParams, resp.Error.Code)
		})
	}
}

func TestHandler_AUC_UsesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockEvaluator(ctrl)
	defaults := evaluation.Options{Boundary: metrics.BoundaryDoubleCount}
	server := newTestServer(mock, defaults)

	mock.EXPECT().
		AUC("a,b\n", defaults).
		Return(models.FloatPair(0.75, 0.5), nil)

	resp := rpcCall(t, server, "classification.auc", map[string]any{"csv": "a,b\n"})

	var result models.Pair[models.Float]
	decodeResult(t, resp, &result)
	assert.Equal(t, models.FloatPair(0.75, 0.5), result)
}

func TestHandler_OptionsOverlayDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockEvaluator(ctrl)
	server := newTestServer(mock, evaluation.Options{
		PositiveRule:    models.PositiveLexical,
		MAPEDenominator: metrics.DenominatorModelA,
	})

	want := evaluation.Options{
		PositiveRule:    models.PositiveLexical,
		Boundary:        metrics.BoundaryDoubleCount,
		MAPEDenominator: metrics.DenominatorModelA,
		Workers:         2,
	}
	mock.EXPECT().
		ROCCurve("a,b\n", want).
		Return(models.Pair[models.Curve]{}, nil)

	// JSON numbers arrive as float64; workers must still decode into an int.
	resp := rpcCall(t, server, "classification.roc", map[string]any{
		"csv":     "a,b\n",
		"options": map[string]any{"boundary": "double-count", "workers": 2},
	})
	assert.Nil(t, resp.Error)
}

func TestHandler_PathInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preds.csv")
	require.NoError(t, os.WriteFile(path, []byte(regressionCSV), 0644))

	mock, server := newMockServer(t)
	mock.EXPECT().
		MAE(regressionCSV, gomock.Any()).
		Return(models.FloatPair(2, 3.5), nil)

	resp := rpcCall(t, server, "regression.mae", map[string]any{"path": path})

	var result models.Pair[models.Float]
	decodeResult(t, resp, &result)
	assert.Equal(t, models.Float(2), result.A)
	assert.Equal(t, models.Float(3.5), result.B)
}

func TestHandler_PathNotFound(t *testing.T) {
	_, server := newMockServer(t)
	missing := filepath.Join(t.TempDir(), "missing.csv")

	resp := rpcCall(t, server, "regression.mse", map[string]any{"path": missing})
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeFileNotFound, resp.Error.Code)
	assert.Equal(t, missing, resp.Error.Data)
}

func TestHandler_ValidationDetail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
		wantRow  *int
		wantCol  *int
	}{
		{
			name:     "numeric field",
			err:      fmt.Errorf("regression input: %w", &models.ParseError{Row: 3, Column: 1, Value: "x", Kind: models.ErrNumeric}),
			wantKind: "numeric",
			wantRow:  new(3),
			wantCol:  new(1),
		},
		{
			name:     "field count",
			err:      &models.ParseError{Row: 2, Column: -1, Kind: models.ErrFieldCount},
			wantKind: "field_count",
			wantRow:  new(2),
		},
		{
			name:     "empty input",
			err:      evaluation.ErrEmptyInput,
			wantKind: "empty_input",
		},
		{
			name: "bad option",
			err:  errors.New(`unknown boundary "sideways"`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, server := newMockServer(t)
			mock.EXPECT().
				MAPE(gomock.Any(), gomock.Any()).
				Return(models.Pair[models.Float]{}, tt.err)

			resp := rpcCall(t, server, "regression.mape", map[string]any{"csv": regressionCSV})
			require.NotNil(t, resp.Error)
			assert.Equal(t, CodeValidationFailed, resp.Error.Code)

			data, err := json.Marshal(resp.Error.Data)
			require.NoError(t, err)
			var detail ValidationDetail
			require.NoError(t, json.Unmarshal(data, &detail))
			assert.Equal(t, tt.err.Error(), detail.Message)
			assert.Equal(t, tt.wantKind, detail.Kind)
			assert.Equal(t, tt.wantRow, detail.Row)
			assert.Equal(t, tt.wantCol, detail.Column)
		})
	}
}

func TestHandler_CSVMethods(t *testing.T) {
	mock, server := newMockServer(t)
	mock.EXPECT().Headers(regressionCSV).Return([]string{"truth", "pred_a", "pred_b"}, nil)
	mock.EXPECT().Records(regressionCSV).Return([][]string{{"10", "12", "8"}}, nil)

	var headers HeadersResult
	decodeResult(t, rpcCall(t, server, "csv.headers", map[string]any{"csv": regressionCSV}), &headers)
	assert.Equal(t, []string{"truth", "pred_a", "pred_b"}, headers.Headers)

	var records RecordsResult
	decodeResult(t, rpcCall(t, server, "csv.parse", map[string]any{"csv": regressionCSV}), &records)
	assert.Equal(t, [][]string{{"10", "12", "8"}}, records.Records)
}

func TestHandler_Reports(t *testing.T) {
	mock, server := newMockServer(t)
	mock.EXPECT().
		Classification(gomock.Any(), gomock.Any()).
		Return(&models.ClassificationReport{ID: "c-1", Mode: models.ModeClassification, Rows: 4}, nil)
	mock.EXPECT().
		Regression(gomock.Any(), gomock.Any()).
		Return(&models.RegressionReport{ID: "r-1", Mode: models.ModeRegression, Rows: 2}, nil)

	var cls models.ClassificationReport
	decodeResult(t, rpcCall(t, server, "classification.report", map[string]any{"csv": "x"}), &cls)
	assert.Equal(t, "c-1", cls.ID)
	assert.Equal(t, 4, cls.Rows)

	var reg models.RegressionReport
	decodeResult(t, rpcCall(t, server, "regression.report", map[string]any{"csv": "x"}), &reg)
	assert.Equal(t, "r-1", reg.ID)
	assert.Equal(t, models.ModeRegression, reg.Mode)
}

func TestHandler_WithService(t *testing.T) {
	server := newTestServer(evaluation.New(), evaluation.Options{})

	input := "truth,label_a,score_a,label_b,score_b\n" +
		"yes,yes,0.9,yes,0.5\n" +
		"yes,yes,0.8,yes,0.5\n" +
		"no,no,0.2,yes,0.5\n" +
		"no,no,0.1,yes,0.5\n"

	var matrices models.Pair[models.ConfusionMatrix]
	decodeResult(t, rpcCall(t, server, "classification.matrix", map[string]any{"csv": input}), &matrices)
	assert.Equal(t, models.ConfusionMatrix{TP: 2, TN: 2}, matrices.A)
	assert.Equal(t, models.ConfusionMatrix{TP: 2, FP: 2}, matrices.B)

	var auc models.Pair[models.Float]
	decodeResult(t, rpcCall(t, server, "classification.auc", map[string]any{
		"csv":     input,
		"options": map[string]any{"correctness": "class"},
	}), &auc)
	assert.InDelta(t, 1.0, float64(auc.A), 1e-9)
	assert.InDelta(t, 0.5, float64(auc.B), 1e-9)

	// Every label of model A is right, so no false positive exists and the
	// label-match curve has undefined rates.
	decodeResult(t, rpcCall(t, server, "classification.auc", map[string]any{"csv": input}), &auc)
	assert.False(t, auc.A.IsFinite())

	resp := rpcCall(t, server, "regression.mae", map[string]any{"csv": "truth,pred_a,pred_b\n1,x,2\n"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeValidationFailed, resp.Error.Code)
}
