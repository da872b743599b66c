package dtree

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A SplitLoss implements the decision criterion used to select the best split
// of a tree, along with the leaf value for a group of targets.
//
// L is the target type (class labels or real values) and T is the type stored
// in leaves.
type SplitLoss[L any, T any] interface {
	// Cost returns the impurity of a non-empty group of targets. Lower values
	// indicate a more homogeneous group.
	Cost(group List[L]) float64

	// Predict returns the terminal value for a non-empty group of targets.
	Predict(group List[L]) T
}

// ClassPrediction is the leaf value of a classification tree.
type ClassPrediction struct {
	// Class is the majority label of the leaf. Ties go to the lowest label.
	Class int `json:"class"`

	// Probabilities[c] is the fraction of the leaf's training rows labeled c.
	Probabilities []float64 `json:"probabilities"`
}

// GiniSplitLoss scores groups of integer class labels by Gini impurity.
//
// Every label must be in [0, NumClasses).
type GiniSplitLoss struct {
	NumClasses int
}

// Cost computes 1 - sum_c p_c^2. Classes absent from the group have p_c = 0, so
// summing over every class of the parent gives the same value as summing over
// the classes present.
func (g GiniSplitLoss) Cost(group List[int]) float64 {
	probs := g.classFractions(group)
	return 1 - floats.Dot(probs, probs)
}

func (g GiniSplitLoss) Predict(group List[int]) ClassPrediction {
	probs := g.classFractions(group)
	return ClassPrediction{
		// MaxIdx returns the first index among equal maxima.
		Class:         floats.MaxIdx(probs),
		Probabilities: probs,
	}
}

func (g GiniSplitLoss) classFractions(group List[int]) []float64 {
	counts := make([]float64, g.NumClasses)
	for i := 0; i < group.Len; i++ {
		counts[group.Get(i)]++
	}
	floats.Scale(1/float64(group.Len), counts)
	return counts
}

// A Criterion names the group score used by a regression tree.
type Criterion string

const (
	// MSE is the mean squared deviation from the group mean.
	MSE Criterion = "mse"

	// MAE is the mean absolute deviation from the group mean.
	MAE Criterion = "mae"

	// STD is the population standard deviation of the group.
	STD Criterion = "std"
)

var criterionAliases = map[string]Criterion{
	"mse":                 MSE,
	"mean-squared-error":  MSE,
	"mae":                 MAE,
	"mean-absolute-error": MAE,
	"std":                 STD,
	"standard-deviation":  STD,
}

// ParseCriterion resolves a criterion from its short or long name.
func ParseCriterion(name string) (Criterion, error) {
	c, ok := criterionAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", errors.Wrapf(ErrUnknownCriterion, "criterion %q", name)
	}
	return c, nil
}

// RegressionSplitLoss scores groups of real targets with a Criterion and
// predicts their mean.
type RegressionSplitLoss struct {
	Criterion Criterion
}

func (r RegressionSplitLoss) Cost(group List[float64]) float64 {
	values := group.Slice()
	switch r.Criterion {
	case MSE:
		_, variance := stat.PopMeanVariance(values, nil)
		return variance
	case MAE:
		mean := stat.Mean(values, nil)
		var total float64
		for _, y := range values {
			total += math.Abs(y - mean)
		}
		return total / float64(len(values))
	case STD:
		_, variance := stat.PopMeanVariance(values, nil)
		return math.Sqrt(variance)
	default:
		panic("unknown criterion: " + string(r.Criterion))
	}
}

func (r RegressionSplitLoss) Predict(group List[float64]) float64 {
	return stat.Mean(group.Slice(), nil)
}
