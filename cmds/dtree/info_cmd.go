package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/unixpickle/dtree/dtree"
)

type infoCmdConfig struct {
	*rootCmdConfig
	model    string
	showTree bool
	asJSON   bool
}

func infoCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &infoCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "info <model>",
		Short: "Describe a model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.model = args[0]
			return config.run()
		},
	}
	cmd.Flags().BoolVar(&config.showTree, "tree", false, "print the tree as nested conditions")
	cmd.Flags().BoolVar(&config.asJSON, "json", false, "print the tree as JSON")
	return cmd
}

func (i *infoCmdConfig) run() error {
	model, err := dtree.Load(i.model, dtree.ReadModel)
	if err != nil {
		return err
	}

	var tree interface {
		fmt.Stringer
		json.Marshaler
	}
	switch model := model.(type) {
	case *dtree.Classifier:
		fmt.Println("Type: classifier")
		fmt.Println("Number of classes:", model.NumClasses())
		fmt.Println("Number of leaves:", dtree.NumLeaves(model.Tree()))
		tree = model.Tree()
	case *dtree.Regressor:
		fmt.Println("Type: regressor")
		fmt.Println("Criterion:", model.Criterion())
		fmt.Println("Number of leaves:", dtree.NumLeaves(model.Tree()))
		tree = model.Tree()
	default:
		return errors.Errorf("unsupported model %T", model)
	}
	fmt.Println("Number of features:", model.NumFeatures())
	fmt.Println("Depth:", model.Depth())

	if i.showTree {
		fmt.Println(tree.String())
	}
	if i.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(tree), "encode tree")
	}
	return nil
}
