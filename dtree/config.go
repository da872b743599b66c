package dtree

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Config controls how a tree is grown and evaluated.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// MaxDepth is the greatest number of branches allowed on any path from
	// the root to a leaf. 0 means unbounded. Default: 0.
	MaxDepth int

	// MinSamplesSplit is the group size at or below which a group becomes a
	// leaf instead of being split further. Must be >= 1. Default: 2.
	MinSamplesSplit int

	// Concurrency is the maximum number of Goroutines used to predict a batch
	// of rows. Training never uses more than one. 0 means GOMAXPROCS.
	Concurrency int

	// Logger receives a debug record for every fit. nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns a Config for an unbounded tree.
func DefaultConfig() Config {
	return Config{MinSamplesSplit: 2}
}

func (c Config) validate() error {
	var err error
	if c.MaxDepth < 0 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig, "max depth must be >= 0, got %d", c.MaxDepth))
	}
	if c.MinSamplesSplit < 1 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig,
			"min samples split must be >= 1, got %d", c.MinSamplesSplit))
	}
	if c.Concurrency < 0 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig, "concurrency must be >= 0, got %d", c.Concurrency))
	}
	return err
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// ClassifierConfig configures a Classifier.
type ClassifierConfig struct {
	Config

	// NumClasses is the number of class labels. Labels must be integers in
	// [0, NumClasses). 0 means the count of distinct labels seen by Fit.
	NumClasses int
}

// DefaultClassifierConfig returns a ClassifierConfig that infers the number
// of classes from the training labels.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{Config: DefaultConfig()}
}

func (c ClassifierConfig) validate() error {
	err := c.Config.validate()
	if c.NumClasses < 0 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig, "number of classes must be >= 0, got %d", c.NumClasses))
	}
	return err
}

// RegressorConfig configures a Regressor.
type RegressorConfig struct {
	Config

	// Criterion is the group score minimized by splits. Default: MSE.
	Criterion Criterion
}

// DefaultRegressorConfig returns a RegressorConfig using MSE.
func DefaultRegressorConfig() RegressorConfig {
	return RegressorConfig{Config: DefaultConfig(), Criterion: MSE}
}
