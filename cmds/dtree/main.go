package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	configPath string

	logger *zap.Logger
}

func main() {
	config := &rootCmdConfig{}
	err := cliParser(config).Execute()
	if config.logger != nil {
		if err != nil {
			config.logger.Error("command failed", zap.Error(err))
		}
		config.logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func cliParser(config *rootCmdConfig) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dtree",
		Short: "dtree grows and applies decision trees",
		Long: `A tool to fit classification and regression trees on CSV or NumPy data,
evaluate them, and use them to make predictions`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(config.verbose)
			if err != nil {
				return err
			}
			config.logger = logger
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&config.verbose, "verbose", "v", false, "log debug messages")
	rootCmd.PersistentFlags().StringVarP(&config.configPath, "config", "c", "",
		"YAML file with tree hyperparameters")
	rootCmd.AddCommand(
		fitCmd(config),
		predictCmd(config),
		scoreCmd(config),
		infoCmd(config),
		renderCmd(config),
	)
	return rootCmd
}
