package dtree

import "github.com/pkg/errors"

var (
	ErrInvalidConfig    = errors.New("invalid tree configuration")
	ErrUnknownCriterion = errors.New("unknown criterion")

	ErrEmptyInput   = errors.New("empty input")
	ErrRowMismatch  = errors.New("number of rows does not match number of targets")
	ErrRaggedRows   = errors.New("rows must be non-empty and all the same width")
	ErrFeatureCount = errors.New("row width does not match the fitted tree")
	ErrLabelRange   = errors.New("class label out of range")

	ErrNotFitted = errors.New("estimator is not fitted")

	// ErrConstantTarget is returned by Regressor.Score when every target is the
	// same, since the coefficient of determination is then undefined.
	ErrConstantTarget = errors.New("coefficient of determination undefined for constant target")
)
