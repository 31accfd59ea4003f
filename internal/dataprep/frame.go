package dataprep

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Frame is a small column-ordered table backed by CSV records. Cells stay raw
// strings; numeric views materialize on demand with NaN marking missing cells.
type Frame struct {
	Columns []string
	Records [][]string
}

// ReadCSV loads a CSV file with a header row into a Frame.
func ReadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read csv %s: missing header row", path)
	}

	return &Frame{Columns: rows[0], Records: rows[1:]}, nil
}

// WriteCSV stores the frame with its header row.
func (f *Frame) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(f.Columns); err != nil {
		file.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := writer.WriteAll(f.Records); err != nil {
		file.Close()
		return fmt.Errorf("write csv rows: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}
	return nil
}

// ColumnIndex returns the position of the named column.
func (f *Frame) ColumnIndex(name string) (int, error) {
	for i, col := range f.Columns {
		if col == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrMissingColumn, name)
}

// Numeric extracts the named columns as a row-major matrix, with NaN for
// cells that are missing or fail to parse.
func (f *Frame) Numeric(columns []string) ([][]float64, error) {
	indices, err := f.columnIndices(columns)
	if err != nil {
		return nil, err
	}

	matrix := make([][]float64, len(f.Records))
	for r, record := range f.Records {
		row := make([]float64, len(indices))
		for c, j := range indices {
			row[c] = parseCell(record[j])
		}
		matrix[r] = row
	}
	return matrix, nil
}

// SetNumeric writes a matrix produced by Numeric back into the named columns.
func (f *Frame) SetNumeric(columns []string, matrix [][]float64) error {
	indices, err := f.columnIndices(columns)
	if err != nil {
		return err
	}
	if len(matrix) != len(f.Records) {
		return fmt.Errorf("matrix has %d rows, frame has %d", len(matrix), len(f.Records))
	}

	for r, row := range matrix {
		for c, j := range indices {
			f.Records[r][j] = formatCell(row[c])
		}
	}
	return nil
}

// NumericColumns returns the columns, minus the excluded ones, whose
// non-missing cells all parse as numbers. Columns without any data are
// skipped.
func (f *Frame) NumericColumns(exclude ...string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}

	var numeric []string
	for j, name := range f.Columns {
		if _, excluded := skip[name]; excluded {
			continue
		}
		hasData := false
		parsable := true
		for _, record := range f.Records {
			raw := record[j]
			if missingCell(raw) {
				continue
			}
			if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
				parsable = false
				break
			}
			hasData = true
		}
		if parsable && hasData {
			numeric = append(numeric, name)
		}
	}
	return numeric
}

// AppendColumn adds a column at the end of the frame.
func (f *Frame) AppendColumn(name string, values []string) error {
	if len(values) != len(f.Records) {
		return fmt.Errorf("column %s has %d values, frame has %d rows", name, len(values), len(f.Records))
	}
	f.Columns = append(f.Columns, name)
	for i := range f.Records {
		f.Records[i] = append(f.Records[i], values[i])
	}
	return nil
}

func (f *Frame) columnIndices(columns []string) ([]int, error) {
	indices := make([]int, len(columns))
	for i, name := range columns {
		j, err := f.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		indices[i] = j
	}
	return indices, nil
}

func missingCell(raw string) bool {
	return raw == "" || raw == "NA" || raw == "NaN"
}

func parseCell(raw string) float64 {
	if missingCell(raw) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
