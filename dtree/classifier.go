package dtree

import "github.com/pkg/errors"

// A Classifier is a binary decision tree that predicts integer class labels
// and class probabilities, choosing splits by Gini impurity.
//
// A Classifier may be used for concurrent predictions once fitted, but Fit
// must not run concurrently with any other method.
type Classifier struct {
	est        estimator[int, ClassPrediction]
	numClasses int
	cfgClasses int
}

// NewClassifier creates an unfitted Classifier.
func NewClassifier(cfg ClassifierConfig) (*Classifier, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "new classifier")
	}
	return &Classifier{
		est:        estimator[int, ClassPrediction]{Config: cfg.Config},
		cfgClasses: cfg.NumClasses,
	}, nil
}

// Fit grows a new tree from the rows of x and their labels y, replacing any
// previously fitted tree.
//
// Labels must be in [0, n), where n is the configured number of classes or,
// if none was configured, the number of distinct labels in y. On error the
// Classifier keeps its previous state.
func (c *Classifier) Fit(x [][]float64, y []int) error {
	numFeatures, err := validateDataset(x, len(y))
	if err != nil {
		return errors.Wrap(err, "fit classifier")
	}

	numClasses := c.cfgClasses
	if numClasses == 0 {
		numClasses = countDistinct(y)
	}
	for i, label := range y {
		if label < 0 || label >= numClasses {
			return errors.Wrapf(ErrLabelRange, "fit classifier: label %d of row %d is not in [0, %d)",
				label, i, numClasses)
		}
	}

	c.est.fit(x, y, numFeatures, GiniSplitLoss{NumClasses: numClasses})
	c.numClasses = numClasses
	return nil
}

// Predict returns the predicted class of every row.
func (c *Classifier) Predict(x [][]float64) ([]int, error) {
	preds, err := c.est.predict(x)
	if err != nil {
		return nil, errors.Wrap(err, "predict classes")
	}
	res := make([]int, len(preds))
	for i, p := range preds {
		res[i] = p.Class
	}
	return res, nil
}

// PredictProba returns, for every row, the probability of each class.
//
// Each result has length NumClasses() and sums to 1.
func (c *Classifier) PredictProba(x [][]float64) ([][]float64, error) {
	preds, err := c.est.predict(x)
	if err != nil {
		return nil, errors.Wrap(err, "predict probabilities")
	}
	res := make([][]float64, len(preds))
	for i, p := range preds {
		res[i] = append([]float64{}, p.Probabilities...)
	}
	return res, nil
}

// Score returns the fraction of rows whose predicted class equals the label.
func (c *Classifier) Score(x [][]float64, y []int) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.Wrapf(ErrRowMismatch, "score classifier: %d rows and %d labels", len(x), len(y))
	} else if len(x) == 0 {
		return 0, errors.Wrap(ErrEmptyInput, "score classifier")
	}
	preds, err := c.Predict(x)
	if err != nil {
		return 0, errors.Wrap(err, "score classifier")
	}
	var correct int
	for i, p := range preds {
		if p == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}

// Fitted reports whether Fit has succeeded at least once.
func (c *Classifier) Fitted() bool {
	return c.est.root != nil
}

// NumClasses returns the number of classes of the fitted tree, or the
// configured number before fitting.
func (c *Classifier) NumClasses() int {
	if c.Fitted() {
		return c.numClasses
	}
	return c.cfgClasses
}

// Depth returns the greatest branch depth reached while fitting.
func (c *Classifier) Depth() int {
	return c.est.depth
}

// NumFeatures returns the row width the tree was fitted on.
func (c *Classifier) NumFeatures() int {
	return c.est.numFeatures
}

// Tree returns the root of the fitted tree, or nil before fitting.
//
// The tree is shared with the Classifier and must not be modified.
func (c *Classifier) Tree() Node[ClassPrediction] {
	return c.est.root
}

// Config returns the configuration the Classifier was created with.
func (c *Classifier) Config() ClassifierConfig {
	return ClassifierConfig{Config: c.est.Config, NumClasses: c.cfgClasses}
}

func countDistinct(labels []int) int {
	seen := map[int]struct{}{}
	for _, label := range labels {
		seen[label] = struct{}{}
	}
	return len(seen)
}
