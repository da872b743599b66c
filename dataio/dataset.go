// Package dataio loads training and prediction data for decision trees from
// CSV and NumPy files.
package dataio

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// A Dataset is a matrix of feature rows with an optional target per row.
type Dataset struct {
	// Features names the columns of X, if the source had a header.
	Features []string

	X [][]float64

	// Y is nil for unlabeled data.
	Y []float64
}

// Labels converts the targets to class labels.
//
// Every target must be a non-negative integer.
func (d *Dataset) Labels() ([]int, error) {
	return Labels(d.Y)
}

// Labels converts real-valued targets to class labels.
func Labels(y []float64) ([]int, error) {
	res := make([]int, len(y))
	for i, v := range y {
		if v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
			return nil, errors.Errorf("target %v of row %d is not a class label", v, i)
		}
		res[i] = int(v)
	}
	return res, nil
}

// Rows copies a matrix into a slice of rows.
func Rows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	res := make([][]float64, r)
	for i := range res {
		res[i] = make([]float64, c)
		for j := range res[i] {
			res[i][j] = m.At(i, j)
		}
	}
	return res
}

// Dense copies rectangular rows into a matrix.
func Dense(rows [][]float64) *mat.Dense {
	if len(rows) == 0 {
		return &mat.Dense{}
	}
	res := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		res.SetRow(i, row)
	}
	return res
}
