package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoHeader is returned when the input does not even contain a header row.
var ErrNoHeader = errors.New("csv: input is empty (no header row)")

// Table is a tokenized CSV document. The first row is treated as headers;
// Records holds the data rows in file order. Records are not required to
// have the header's width; arity is checked by whoever interprets them.
type Table struct {
	Headers []string
	Records [][]string
}

// Parse tokenizes CSV text read from r.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	return &Table{Headers: records[0], Records: records[1:]}, nil
}

// ParseString tokenizes CSV text held in memory.
func ParseString(s string) (*Table, error) {
	return Parse(strings.NewReader(s))
}
