package dtree

import (
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"go.uber.org/zap"
)

// estimator holds the state shared by Classifier and Regressor: a fitted
// tree and the shape of the data it was fitted on.
type estimator[L any, T any] struct {
	Config Config

	root        Node[T]
	depth       int
	numFeatures int
}

// fit grows a new tree on a validated dataset and swaps it in once it is
// complete.
func (e *estimator[L, T]) fit(x [][]float64, y []L, numFeatures int, loss SplitLoss[L, T]) {
	start := time.Now()

	rows := make([]int, len(x))
	for i := range rows {
		rows[i] = i
	}
	b := &builder[L, T]{
		X:               x,
		Y:               y,
		Loss:            loss,
		MaxDepth:        e.Config.MaxDepth,
		MinSamplesSplit: e.Config.MinSamplesSplit,
	}
	root := b.Build(rows)

	e.root = root
	e.depth = b.Depth
	e.numFeatures = numFeatures

	e.Config.logger().Debug(
		"fitted decision tree",
		zap.Int("rows", len(x)),
		zap.Int("features", numFeatures),
		zap.Int("depth", b.Depth),
		zap.Int("leaves", NumLeaves(root)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// predict returns the leaf value for every row of x.
func (e *estimator[L, T]) predict(x [][]float64) ([]T, error) {
	if e.root == nil {
		return nil, ErrNotFitted
	}
	for i, row := range x {
		if len(row) != e.numFeatures {
			return nil, errors.Wrapf(ErrFeatureCount, "row %d has %d features, expected %d",
				i, len(row), e.numFeatures)
		}
	}

	concurrency := e.Config.Concurrency
	if concurrency == 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	res := make([]T, len(x))
	essentials.ConcurrentMap(concurrency, len(x), func(i int) {
		res[i] = Predict(e.root, x[i])
	})
	return res, nil
}

// validateDataset checks that x is a non-empty rectangular matrix with one
// row per target, and returns its width.
func validateDataset(x [][]float64, numTargets int) (int, error) {
	if len(x) == 0 {
		return 0, ErrEmptyInput
	}
	if len(x) != numTargets {
		return 0, errors.Wrapf(ErrRowMismatch, "%d rows and %d targets", len(x), numTargets)
	}
	numFeatures := len(x[0])
	if numFeatures == 0 {
		return 0, errors.Wrap(ErrRaggedRows, "row 0 has no features")
	}
	for i, row := range x {
		if len(row) != numFeatures {
			return 0, errors.Wrapf(ErrRaggedRows, "row %d has %d features but row 0 has %d",
				i, len(row), numFeatures)
		}
	}
	return numFeatures, nil
}
