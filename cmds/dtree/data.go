package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/unixpickle/dtree/dataio"
)

// dataFlags select the input data of a command.
//
// Files ending in .npy are read as NumPy arrays, and require a separate
// target file for labeled data. Anything else is read as CSV.
type dataFlags struct {
	input     string
	targets   string
	header    bool
	targetCol int
}

func (d *dataFlags) addFlags(cmd *cobra.Command, labeled bool) {
	flags := cmd.Flags()
	flags.StringVarP(&d.input, "input", "i", "-", "CSV or .npy feature file (- for stdin)")
	flags.BoolVar(&d.header, "header", false, "CSV input starts with a header row")
	if labeled {
		flags.StringVar(&d.targets, "targets", "", ".npy target file for .npy input")
		flags.IntVar(&d.targetCol, "target-column", -1,
			"CSV column holding the target (negative counts from the end)")
	}
}

func (d *dataFlags) load(labeled bool) (*dataio.Dataset, error) {
	if isNpy(d.input) {
		if labeled && d.targets == "" {
			return nil, errors.New("--targets is required for .npy input")
		}
		targets := ""
		if labeled {
			targets = d.targets
		}
		return dataio.ReadNpyDataset(d.input, targets)
	}
	return dataio.ReadCSVFile(d.input, dataio.CSVOptions{
		Header:    d.header,
		Target:    d.targetCol,
		Unlabeled: !labeled,
	})
}

// writeValues writes one value per row, as a NumPy array if path ends in
// .npy and as CSV otherwise.
func writeValues(path string, values []float64) error {
	w := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "write output")
		}
		defer f.Close()
		w = f
	}
	if isNpy(path) {
		return dataio.WriteNpyVector(w, values)
	}
	return dataio.WriteCSV(w, values)
}

func writeMatrix(path string, rows [][]float64) error {
	w := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "write output")
		}
		defer f.Close()
		w = f
	}
	if isNpy(path) {
		return dataio.WriteNpyMatrix(w, rows)
	}
	return dataio.WriteCSVRows(w, rows)
}

func isNpy(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".npy")
}
