package dtree

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A Regressor is a binary decision tree that predicts real values. Leaves hold
// the mean target of their training rows.
//
// A Regressor may be used for concurrent predictions once fitted, but Fit
// must not run concurrently with any other method.
type Regressor struct {
	est       estimator[float64, float64]
	criterion Criterion
}

// NewRegressor creates an unfitted Regressor.
//
// An empty criterion selects MSE. Unknown criteria are rejected here rather
// than at fit time.
func NewRegressor(cfg RegressorConfig) (*Regressor, error) {
	err := cfg.validate()
	criterion := MSE
	if cfg.Criterion != "" {
		var parseErr error
		criterion, parseErr = ParseCriterion(string(cfg.Criterion))
		err = multierr.Append(err, parseErr)
	}
	if err != nil {
		return nil, errors.Wrap(err, "new regressor")
	}
	return &Regressor{
		est:       estimator[float64, float64]{Config: cfg.Config},
		criterion: criterion,
	}, nil
}

// Fit grows a new tree from the rows of x and their targets y, replacing any
// previously fitted tree. On error the Regressor keeps its previous state.
func (r *Regressor) Fit(x [][]float64, y []float64) error {
	numFeatures, err := validateDataset(x, len(y))
	if err != nil {
		return errors.Wrap(err, "fit regressor")
	}
	r.est.fit(x, y, numFeatures, RegressionSplitLoss{Criterion: r.criterion})
	return nil
}

// Predict returns the predicted value of every row.
func (r *Regressor) Predict(x [][]float64) ([]float64, error) {
	preds, err := r.est.predict(x)
	if err != nil {
		return nil, errors.Wrap(err, "predict values")
	}
	return preds, nil
}

// Score returns the coefficient of determination 1 - SS_res/SS_tot of the
// predictions for x against y.
//
// When every target is equal SS_tot is 0 and the score is undefined; Score
// then returns NaN along with ErrConstantTarget.
func (r *Regressor) Score(x [][]float64, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.Wrapf(ErrRowMismatch, "score regressor: %d rows and %d targets", len(x), len(y))
	} else if len(x) == 0 {
		return 0, errors.Wrap(ErrEmptyInput, "score regressor")
	}
	preds, err := r.Predict(x)
	if err != nil {
		return 0, errors.Wrap(err, "score regressor")
	}
	if floats.Max(y) == floats.Min(y) {
		return math.NaN(), errors.Wrap(ErrConstantTarget, "score regressor")
	}
	return stat.RSquaredFrom(preds, y, nil), nil
}

// Fitted reports whether Fit has succeeded at least once.
func (r *Regressor) Fitted() bool {
	return r.est.root != nil
}

// Criterion returns the resolved split criterion.
func (r *Regressor) Criterion() Criterion {
	return r.criterion
}

// Depth returns the greatest branch depth reached while fitting.
func (r *Regressor) Depth() int {
	return r.est.depth
}

// NumFeatures returns the row width the tree was fitted on.
func (r *Regressor) NumFeatures() int {
	return r.est.numFeatures
}

// Tree returns the root of the fitted tree, or nil before fitting.
//
// The tree is shared with the Regressor and must not be modified.
func (r *Regressor) Tree() Node[float64] {
	return r.est.root
}

// Config returns the configuration the Regressor was created with.
func (r *Regressor) Config() RegressorConfig {
	return RegressorConfig{Config: r.est.Config, Criterion: r.criterion}
}
