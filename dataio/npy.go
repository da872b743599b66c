package dataio

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// ReadNpyMatrix reads a non-empty two-dimensional float64 NumPy array.
func ReadNpyMatrix(r io.Reader) (*mat.Dense, error) {
	reader, err := npyio.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "read npy matrix")
	}
	shape := reader.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, errors.Errorf("read npy matrix: expected 2 dimensions but got shape %v", shape)
	}
	if shape[0] == 0 || shape[1] == 0 {
		return nil, errors.Errorf("read npy matrix: empty matrix of shape %v", shape)
	}
	res := &mat.Dense{}
	if err := reader.Read(res); err != nil {
		return nil, errors.Wrap(err, "read npy matrix")
	}
	return res, nil
}

// ReadNpyVector reads a float64 NumPy array of shape (n,) or (n, 1).
func ReadNpyVector(r io.Reader) ([]float64, error) {
	reader, err := npyio.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "read npy vector")
	}
	shape := reader.Header.Descr.Shape
	if len(shape) != 1 && !(len(shape) == 2 && shape[1] == 1) {
		return nil, errors.Errorf("read npy vector: expected a vector but got shape %v", shape)
	}
	var res []float64
	if err := reader.Read(&res); err != nil {
		return nil, errors.Wrap(err, "read npy vector")
	}
	return res, nil
}

// ReadNpyDataset reads a feature matrix and, if targetPath is not empty, a
// target vector with one entry per row.
func ReadNpyDataset(featurePath, targetPath string) (*Dataset, error) {
	m, err := readNpyFile(featurePath, ReadNpyMatrix)
	if err != nil {
		return nil, err
	}
	res := &Dataset{X: Rows(m)}
	if targetPath == "" {
		return res, nil
	}
	res.Y, err = readNpyFile(targetPath, ReadNpyVector)
	if err != nil {
		return nil, err
	}
	if len(res.Y) != len(res.X) {
		return nil, errors.Errorf("%d feature rows but %d targets", len(res.X), len(res.Y))
	}
	return res, nil
}

// WriteNpyVector writes values as a one-dimensional float64 NumPy array.
func WriteNpyVector(w io.Writer, values []float64) error {
	return errors.Wrap(npyio.Write(w, values), "write npy vector")
}

// WriteNpyMatrix writes rows as a two-dimensional float64 NumPy array.
func WriteNpyMatrix(w io.Writer, rows [][]float64) error {
	return errors.Wrap(npyio.Write(w, Dense(rows)), "write npy matrix")
}

func readNpyFile[T any](path string, f func(io.Reader) (T, error)) (T, error) {
	var zero T
	file, err := os.Open(path)
	if err != nil {
		return zero, errors.Wrap(err, "read npy")
	}
	defer file.Close()
	res, err := f(file)
	if err != nil {
		return zero, errors.Wrapf(err, "parse %s", path)
	}
	return res, nil
}
