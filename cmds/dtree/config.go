package main

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/unixpickle/dtree/dtree"
)

const (
	taskClassify = "classify"
	taskRegress  = "regress"
)

// treeConfig holds the hyperparameters of the fit command. Values come from
// the defaults, then the YAML file, then explicitly set flags.
type treeConfig struct {
	Task            string `yaml:"task"`
	MaxDepth        int    `yaml:"max_depth"`
	MinSamplesSplit int    `yaml:"min_samples_split"`
	Criterion       string `yaml:"criterion"`
	NumClasses      int    `yaml:"num_classes"`
	Concurrency     int    `yaml:"concurrency"`
}

func defaultTreeConfig() treeConfig {
	defaults := dtree.DefaultConfig()
	return treeConfig{
		Task:            taskClassify,
		MaxDepth:        defaults.MaxDepth,
		MinSamplesSplit: defaults.MinSamplesSplit,
		Criterion:       string(dtree.MSE),
	}
}

func (t *treeConfig) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&t.Task, "task", t.Task, "type of tree: classify or regress")
	flags.IntVar(&t.MaxDepth, "max-depth", t.MaxDepth, "maximum tree depth (0 for unbounded)")
	flags.IntVar(&t.MinSamplesSplit, "min-samples-split", t.MinSamplesSplit,
		"largest group size that becomes a leaf without splitting")
	flags.StringVar(&t.Criterion, "criterion", t.Criterion, "regression criterion: mse, mae or std")
	flags.IntVar(&t.NumClasses, "num-classes", t.NumClasses,
		"number of classes (0 to count distinct labels)")
	flags.IntVar(&t.Concurrency, "concurrency", t.Concurrency,
		"prediction goroutines (0 for GOMAXPROCS)")
}

// load reads the YAML file at path, keeping the values of flags that were
// set on the command line.
func (t *treeConfig) load(path string, cmd *cobra.Command) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	flags := cmd.Flags()
	changed := map[string]string{}
	flags.Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})
	if err := yaml.UnmarshalWithOptions(data, t, yaml.Strict()); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	for name, value := range changed {
		if err := flags.Set(name, value); err != nil {
			return errors.Wrapf(err, "flag %s", name)
		}
	}
	return nil
}

func (t *treeConfig) baseConfig() dtree.Config {
	return dtree.Config{
		MaxDepth:        t.MaxDepth,
		MinSamplesSplit: t.MinSamplesSplit,
		Concurrency:     t.Concurrency,
	}
}

func (t *treeConfig) classifierConfig() dtree.ClassifierConfig {
	return dtree.ClassifierConfig{Config: t.baseConfig(), NumClasses: t.NumClasses}
}

func (t *treeConfig) regressorConfig() dtree.RegressorConfig {
	return dtree.RegressorConfig{Config: t.baseConfig(), Criterion: dtree.Criterion(t.Criterion)}
}
