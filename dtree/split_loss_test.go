package dtree

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestGiniSplitLoss(t *testing.T) {
	loss := GiniSplitLoss{NumClasses: 3}
	if c := loss.Cost(NewListSlice([]int{1, 1, 1})); c != 0 {
		t.Errorf("pure group should cost 0 but got %f", c)
	}
	if c := loss.Cost(NewListSlice([]int{0, 1, 2})); math.Abs(c-2.0/3) > 1e-8 {
		t.Errorf("balanced group should cost 2/3 but got %f", c)
	}
	if c := loss.Cost(NewListSlice([]int{0, 0, 1, 1})); math.Abs(c-0.5) > 1e-8 {
		t.Errorf("two balanced classes should cost 1/2 but got %f", c)
	}

	pred := loss.Predict(NewListSlice([]int{2, 1, 2, 1}))
	if pred.Class != 1 {
		t.Errorf("tie should go to the lowest class but got %d", pred.Class)
	}
	expected := []float64{0, 0.5, 0.5}
	for i, p := range expected {
		if pred.Probabilities[i] != p {
			t.Fatalf("expected probabilities %v but got %v", expected, pred.Probabilities)
		}
	}
}

func TestRegressionSplitLoss(t *testing.T) {
	group := NewListSlice([]float64{1, 2, 3, 4})
	for _, c := range []struct {
		Criterion Criterion
		Expected  float64
	}{
		{MSE, 1.25},
		{MAE, 1},
		{STD, math.Sqrt(1.25)},
	} {
		loss := RegressionSplitLoss{Criterion: c.Criterion}
		if actual := loss.Cost(group); math.Abs(actual-c.Expected) > 1e-8 {
			t.Errorf("criterion %s: expected %f but got %f", c.Criterion, c.Expected, actual)
		}
		if actual := loss.Predict(group); actual != 2.5 {
			t.Errorf("criterion %s: expected mean 2.5 but got %f", c.Criterion, actual)
		}
		if actual := loss.Cost(NewListSlice([]float64{7})); actual != 0 {
			t.Errorf("criterion %s: singleton should cost 0 but got %f", c.Criterion, actual)
		}
	}
}

func TestParseCriterion(t *testing.T) {
	for name, expected := range map[string]Criterion{
		"mse":                MSE,
		"Mean-Squared-Error": MSE,
		" mae ":              MAE,
		"standard-deviation": STD,
	} {
		actual, err := ParseCriterion(name)
		if err != nil {
			t.Errorf("criterion %q: %v", name, err)
		} else if actual != expected {
			t.Errorf("criterion %q: expected %s but got %s", name, expected, actual)
		}
	}
	if _, err := ParseCriterion("gini"); !errors.Is(err, ErrUnknownCriterion) {
		t.Errorf("expected ErrUnknownCriterion but got %v", err)
	}
}
