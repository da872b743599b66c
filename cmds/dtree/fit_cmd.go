package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/unixpickle/dtree/dataio"
	"github.com/unixpickle/dtree/dtree"
	"go.uber.org/zap"
)

type fitCmdConfig struct {
	*rootCmdConfig
	data   dataFlags
	tree   treeConfig
	output string
}

func fitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &fitCmdConfig{rootCmdConfig: rootConfig, tree: defaultTreeConfig()}
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a tree to labeled data",
		Long:  `Fit a classification or regression tree to labeled data and save it to a model file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.tree.load(config.configPath, cmd); err != nil {
				return err
			}
			return config.run()
		},
	}
	config.data.addFlags(cmd, true)
	config.tree.addFlags(cmd)
	cmd.Flags().StringVarP(&config.output, "output", "o", "", "path of the model file to write")
	cmd.MarkFlagRequired("output")
	return cmd
}

func (f *fitCmdConfig) run() error {
	data, err := f.data.load(true)
	if err != nil {
		return err
	}
	if len(data.X) == 0 {
		return errors.Wrap(dtree.ErrEmptyInput, "fit")
	}
	f.logger.Info("loaded training data",
		zap.String("input", f.data.input),
		zap.Int("rows", len(data.X)),
		zap.Int("features", len(data.X[0])))

	start := time.Now()
	var model dtree.Estimator
	var score float64
	switch f.tree.Task {
	case taskClassify:
		model, score, err = f.fitClassifier(data)
	case taskRegress:
		model, score, err = f.fitRegressor(data)
	default:
		err = errors.Errorf("unknown task %q", f.tree.Task)
	}
	if err != nil {
		return err
	}
	f.logger.Info("fitted tree",
		zap.String("task", f.tree.Task),
		zap.Int("depth", model.Depth()),
		zap.Float64("training_score", score),
		zap.Duration("elapsed", time.Since(start)))

	if err := dtree.Save(f.output, model, dtree.WriteModel); err != nil {
		return err
	}
	f.logger.Info("saved model", zap.String("output", f.output))
	return nil
}

func (f *fitCmdConfig) fitClassifier(data *dataio.Dataset) (dtree.Estimator, float64, error) {
	labels, err := data.Labels()
	if err != nil {
		return nil, 0, err
	}
	cfg := f.tree.classifierConfig()
	cfg.Logger = f.logger
	c, err := dtree.NewClassifier(cfg)
	if err != nil {
		return nil, 0, err
	}
	if err := c.Fit(data.X, labels); err != nil {
		return nil, 0, err
	}
	score, err := c.Score(data.X, labels)
	return c, score, err
}

func (f *fitCmdConfig) fitRegressor(data *dataio.Dataset) (dtree.Estimator, float64, error) {
	cfg := f.tree.regressorConfig()
	cfg.Logger = f.logger
	r, err := dtree.NewRegressor(cfg)
	if err != nil {
		return nil, 0, err
	}
	if err := r.Fit(data.X, data.Y); err != nil {
		return nil, 0, err
	}
	score, err := r.Score(data.X, data.Y)
	if errors.Is(err, dtree.ErrConstantTarget) {
		f.logger.Warn("training score is undefined for a constant target")
		err = nil
	}
	return r, score, err
}
