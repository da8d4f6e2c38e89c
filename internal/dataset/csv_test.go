package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name        string
		csv         string
		wantRecords int
		wantCols    int
		wantErr     string
	}{
		{
			name:        "classification table",
			csv:         "truth,label_a,score_a,label_b,score_b\nyes,yes,0.9,no,0.4\nno,no,0.2,yes,0.6\n",
			wantRecords: 2,
			wantCols:    5,
		},
		{
			name:        "regression table",
			csv:         "truth,pred_a,pred_b\n10,12,8\n",
			wantRecords: 1,
			wantCols:    3,
		},
		{
			name:        "headers only",
			csv:         "truth,pred_a,pred_b\n",
			wantRecords: 0,
		},
		{
			name:    "completely empty",
			csv:     "",
			wantErr: "no header row",
		},
		{
			name:    "unterminated quote",
			csv:     "a,b\n\"oops,1\n",
			wantErr: "csv: parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseString(tt.csv)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, table.Records, tt.wantRecords)
			if tt.wantRecords > 0 {
				assert.Len(t, table.Records[0], tt.wantCols)
			}
		})
	}
}

func TestParse_RaggedRowsAreKept(t *testing.T) {
	table, err := ParseString("truth,pred_a,pred_b\n1,2,3\n4,5\n")
	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.Equal(t, []string{"4", "5"}, table.Records[1])
}

func TestParse_TrimsLeadingSpace(t *testing.T) {
	table, err := ParseString("truth, pred_a, pred_b\n1, 2, 3\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"truth", "pred_a", "pred_b"}, table.Headers)
	assert.Equal(t, []string{"1", "2", "3"}, table.Records[0])
}
