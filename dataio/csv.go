package dataio

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CSVOptions controls how ReadCSV interprets columns.
type CSVOptions struct {
	// Header indicates that the first record names the columns.
	Header bool

	// Target is the index of the target column. Negative values count from
	// the end, so -1 is the last column.
	Target int

	// Unlabeled indicates that every column is a feature and Target is
	// ignored.
	Unlabeled bool
}

// DefaultCSVOptions reads a headerless file whose last column is the target.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Target: -1}
}

// ReadCSV parses numeric records into a Dataset.
func ReadCSV(r io.Reader, opts CSVOptions) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	res := &Dataset{}
	target := -1
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "read csv")
		}
		if line == 1 {
			if !opts.Unlabeled {
				target = opts.Target
				if target < 0 {
					target += len(record)
				}
				if target < 0 || target >= len(record) {
					return nil, errors.Errorf("read csv: target column %d out of range for %d columns",
						opts.Target, len(record))
				}
				if len(record) < 2 {
					return nil, errors.New("read csv: need at least one feature and a target")
				}
			}
			if opts.Header {
				res.Features = dropColumn(record, target)
				continue
			}
		}

		row := make([]float64, 0, len(record))
		for i, field := range record {
			value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "read csv: line %d column %d", line, i+1)
			}
			if i == target {
				res.Y = append(res.Y, value)
			} else {
				row = append(row, value)
			}
		}
		res.X = append(res.X, row)
	}
	if len(res.X) == 0 {
		return nil, errors.New("read csv: no data rows")
	}
	return res, nil
}

// ReadCSVFile reads a Dataset from the file at path, or from standard input
// if path is "-".
func ReadCSVFile(path string, opts CSVOptions) (*Dataset, error) {
	if path == "-" {
		return ReadCSV(os.Stdin, opts)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	defer f.Close()
	res, err := ReadCSV(f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return res, nil
}

// WriteCSV writes one value per line.
func WriteCSV(w io.Writer, values []float64) error {
	rows := make([][]float64, len(values))
	for i, v := range values {
		rows[i] = []float64{v}
	}
	return WriteCSVRows(w, rows)
}

// WriteCSVRows writes one record per row.
func WriteCSVRows(w io.Writer, rows [][]float64) error {
	writer := csv.NewWriter(w)
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "write csv")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "write csv")
}

func dropColumn(record []string, column int) []string {
	res := make([]string, 0, len(record))
	for i, x := range record {
		if i != column {
			res = append(res, x)
		}
	}
	return res
}
