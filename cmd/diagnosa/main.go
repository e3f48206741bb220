package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Skufu/diagnosa/internal/config"
)

var version = "v0.1.0" // Overwritten at build time

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "diagnosa",
		Short: "COVID-19 symptom screening with a decision tree",
		Long: `diagnosa runs the trained decision tree against reported symptoms and
shows the dataset and feature importances the model was built from.`,
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().String("model", "", "Path to the model artifact (overrides MODEL_PATH)")
	rootCmd.PersistentFlags().String("dataset", "", "Path to the dataset CSV (overrides DATASET_PATH)")
	rootCmd.PersistentFlags().StringP("output", "o", "human", "Output format (human, json, yaml)")

	rootCmd.AddCommand(
		newDiagnoseCmd(),
		newModelCmd(),
		newDatasetCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "diagnosa version %s\n", version)
		},
	}
}

// loadConfig applies --model and --dataset on top of the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("model"); p != "" {
		cfg.ModelPath = p
	}
	if p, _ := cmd.Flags().GetString("dataset"); p != "" {
		cfg.DatasetPath = p
	}
	return cfg, nil
}
