package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/unixpickle/dtree/dtree"
	"go.uber.org/zap"
)

type predictCmdConfig struct {
	*rootCmdConfig
	data   dataFlags
	model  string
	output string
	proba  bool
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict targets with a fitted tree",
		Long: `Predict a class or value for every row of the input. With --proba, a
classifier writes one row of class probabilities per input row instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.run()
		},
	}
	config.data.addFlags(cmd, false)
	cmd.Flags().StringVarP(&config.model, "model", "m", "", "path of the model file")
	cmd.Flags().StringVarP(&config.output, "output", "o", "-", "CSV or .npy output file (- for stdout)")
	cmd.Flags().BoolVar(&config.proba, "proba", false, "write class probabilities")
	cmd.MarkFlagRequired("model")
	return cmd
}

func (p *predictCmdConfig) run() error {
	model, err := dtree.Load(p.model, dtree.ReadModel)
	if err != nil {
		return err
	}
	data, err := p.data.load(false)
	if err != nil {
		return err
	}
	p.logger.Debug("predicting", zap.Int("rows", len(data.X)))

	switch model := model.(type) {
	case *dtree.Classifier:
		if p.proba {
			probs, err := model.PredictProba(data.X)
			if err != nil {
				return err
			}
			return writeMatrix(p.output, probs)
		}
		classes, err := model.Predict(data.X)
		if err != nil {
			return err
		}
		values := make([]float64, len(classes))
		for i, c := range classes {
			values[i] = float64(c)
		}
		return writeValues(p.output, values)
	case *dtree.Regressor:
		if p.proba {
			return errors.New("--proba requires a classifier")
		}
		values, err := model.Predict(data.X)
		if err != nil {
			return err
		}
		return writeValues(p.output, values)
	default:
		return errors.Errorf("unsupported model %T", model)
	}
}
