package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/unixpickle/dtree/dtree"
	"go.uber.org/zap"
)

type scoreCmdConfig struct {
	*rootCmdConfig
	data  dataFlags
	model string
}

func scoreCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &scoreCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Evaluate a fitted tree on labeled data",
		Long: `Print the accuracy of a classifier or the coefficient of determination of a
regressor on labeled data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.run()
		},
	}
	config.data.addFlags(cmd, true)
	cmd.Flags().StringVarP(&config.model, "model", "m", "", "path of the model file")
	cmd.MarkFlagRequired("model")
	return cmd
}

func (s *scoreCmdConfig) run() error {
	model, err := dtree.Load(s.model, dtree.ReadModel)
	if err != nil {
		return err
	}
	data, err := s.data.load(true)
	if err != nil {
		return err
	}

	var score float64
	var metric string
	switch model := model.(type) {
	case *dtree.Classifier:
		labels, err := data.Labels()
		if err != nil {
			return err
		}
		metric = "accuracy"
		score, err = model.Score(data.X, labels)
		if err != nil {
			return err
		}
	case *dtree.Regressor:
		metric = "r2"
		score, err = model.Score(data.X, data.Y)
		if err != nil {
			return err
		}
	default:
		return errors.Errorf("unsupported model %T", model)
	}
	s.logger.Debug("scored model", zap.String("metric", metric), zap.Float64("score", score))
	fmt.Printf("%s: %f\n", metric, score)
	return nil
}
