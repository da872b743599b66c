package dtree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

func TestRegressorSimple(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{1, 2, 3, 4}

	for _, criterion := range []Criterion{MSE, MAE, STD} {
		cfg := DefaultRegressorConfig()
		cfg.MinSamplesSplit = 1
		cfg.Criterion = criterion
		r := mustRegressor(t, cfg, x, y)
		preds, err := r.Predict(x)
		if err != nil {
			t.Fatal(err)
		}
		for i, p := range preds {
			if p != y[i] {
				t.Fatalf("criterion %s: expected %v but got %v", criterion, y, preds)
			}
		}
		if score, err := r.Score(x, y); err != nil {
			t.Fatal(err)
		} else if score != 1 {
			t.Errorf("criterion %s: expected score 1 but got %f", criterion, score)
		}
	}

	cfg := DefaultRegressorConfig()
	cfg.MinSamplesSplit = 1
	r := mustRegressor(t, cfg, x, y)
	root := r.Tree().(*Branch[float64])
	if root.Feature != 0 || root.Threshold != 3 {
		t.Errorf("expected root split x[0] < 3 but got x[%d] < %v", root.Feature, root.Threshold)
	}
	if r.Depth() != 2 {
		t.Errorf("expected depth 2 but got %d", r.Depth())
	}
}

func TestRegressorStump(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{1, 2, 3, 4}
	cfg := DefaultRegressorConfig()
	cfg.MaxDepth = 1
	r := mustRegressor(t, cfg, x, y)

	preds, err := r.Predict(x)
	if err != nil {
		t.Fatal(err)
	}
	expected := []float64{1.5, 1.5, 3.5, 3.5}
	for i, p := range expected {
		if preds[i] != p {
			t.Fatalf("expected %v but got %v", expected, preds)
		}
	}
	score, err := r.Score(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(score-0.8) > 1e-8 {
		t.Errorf("expected score 0.8 but got %f", score)
	}
}

func TestRegressorDepthLimit(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	x := make([][]float64, 200)
	y := make([]float64, len(x))
	for i := range x {
		x[i] = []float64{rng.Float64(), rng.Float64()}
		y[i] = math.Sin(x[i][0]*6) + x[i][1]*x[i][1] + rng.NormFloat64()*0.1
	}

	var lastScore float64
	for _, maxDepth := range []int{1, 2, 4, 8} {
		cfg := DefaultRegressorConfig()
		cfg.MaxDepth = maxDepth
		r := mustRegressor(t, cfg, x, y)
		if r.Depth() > maxDepth || MaxDepth(r.Tree()) > maxDepth {
			t.Errorf("max depth %d: got depth %d", maxDepth, r.Depth())
		}
		score, err := r.Score(x, y)
		if err != nil {
			t.Fatal(err)
		}
		if score < lastScore-1e-8 {
			t.Errorf("max depth %d: training score dropped from %f to %f", maxDepth, lastScore, score)
		}
		lastScore = score
	}
}

func TestRegressorConstantTarget(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}}
	y := []float64{5, 5, 5}
	r := mustRegressor(t, DefaultRegressorConfig(), x, y)

	preds, err := r.Predict(x)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range preds {
		if p != 5 {
			t.Fatalf("expected constant predictions but got %v", preds)
		}
	}
	score, err := r.Score(x, y)
	if !errors.Is(err, ErrConstantTarget) {
		t.Errorf("expected ErrConstantTarget but got %v", err)
	}
	if !math.IsNaN(score) {
		t.Errorf("expected NaN but got %f", score)
	}
}

func TestRegressorCriterion(t *testing.T) {
	_, err := NewRegressor(RegressorConfig{Config: DefaultConfig(), Criterion: "gini"})
	if !errors.Is(err, ErrUnknownCriterion) {
		t.Errorf("expected ErrUnknownCriterion but got %v", err)
	}

	r, err := NewRegressor(RegressorConfig{Config: DefaultConfig()})
	if err != nil {
		t.Fatal(err)
	}
	if r.Criterion() != MSE {
		t.Errorf("expected default criterion %s but got %s", MSE, r.Criterion())
	}

	r, err = NewRegressor(RegressorConfig{Config: DefaultConfig(), Criterion: "mean-absolute-error"})
	if err != nil {
		t.Fatal(err)
	}
	if r.Criterion() != MAE || r.Config().Criterion != MAE {
		t.Errorf("expected criterion %s but got %s", MAE, r.Criterion())
	}
}

func TestRegressorErrors(t *testing.T) {
	r, err := NewRegressor(DefaultRegressorConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Predict([][]float64{{1}}); !errors.Is(err, ErrNotFitted) {
		t.Errorf("expected ErrNotFitted but got %v", err)
	}
	if _, err := r.Score([][]float64{{1}}, []float64{1}); !errors.Is(err, ErrNotFitted) {
		t.Errorf("expected ErrNotFitted but got %v", err)
	}
	if err := r.Fit([][]float64{{1}, {2}}, []float64{1}); !errors.Is(err, ErrRowMismatch) {
		t.Errorf("expected ErrRowMismatch but got %v", err)
	}
	if err := r.Fit([][]float64{}, []float64{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput but got %v", err)
	}
	if err := r.Fit([][]float64{{1}, {1, 2}}, []float64{1, 2}); !errors.Is(err, ErrRaggedRows) {
		t.Errorf("expected ErrRaggedRows but got %v", err)
	}
	if r.Fitted() {
		t.Error("failed fits should leave the regressor unfitted")
	}
}

func mustRegressor(t *testing.T, cfg RegressorConfig, x [][]float64, y []float64) *Regressor {
	r, err := NewRegressor(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Fit(x, y); err != nil {
		t.Fatal(err)
	}
	return r
}
