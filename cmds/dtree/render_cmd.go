package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/unixpickle/dtree/dtree"
	"github.com/unixpickle/dtree/treeviz"
	"go.uber.org/zap"
)

type renderCmdConfig struct {
	*rootCmdConfig
	model        string
	output       string
	format       string
	featureNames string
}

func renderCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &renderCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a fitted tree with Graphviz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.run()
		},
	}
	cmd.Flags().StringVarP(&config.model, "model", "m", "", "path of the model file")
	cmd.Flags().StringVarP(&config.output, "output", "o", "", "path of the image to write")
	cmd.Flags().StringVar(&config.format, "format", "",
		"dot, png, svg or jpg (default: from the output extension)")
	cmd.Flags().StringVar(&config.featureNames, "feature-names", "",
		"comma-separated names of the features")
	cmd.MarkFlagRequired("model")
	cmd.MarkFlagRequired("output")
	return cmd
}

func (r *renderCmdConfig) run() error {
	formatName := r.format
	if formatName == "" {
		formatName = filepath.Ext(r.output)
	}
	format, err := treeviz.ParseFormat(formatName)
	if err != nil {
		return err
	}
	var names []string
	if r.featureNames != "" {
		names = strings.Split(r.featureNames, ",")
	}

	model, err := dtree.Load(r.model, dtree.ReadModel)
	if err != nil {
		return err
	}
	f, err := os.Create(r.output)
	if err != nil {
		return errors.Wrap(err, "render")
	}
	defer f.Close()

	switch model := model.(type) {
	case *dtree.Classifier:
		err = treeviz.Render(f, model.Tree(), names, treeviz.ClassLabel, format)
	case *dtree.Regressor:
		err = treeviz.Render(f, model.Tree(), names, treeviz.ValueLabel, format)
	default:
		err = errors.Errorf("unsupported model %T", model)
	}
	if err != nil {
		return err
	}
	r.logger.Info("rendered tree", zap.String("output", r.output), zap.String("format", string(format)))
	return nil
}
