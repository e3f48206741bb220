package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Skufu/diagnosa/internal/diagnosis"
)

type modelInfo struct {
	Criterion    string                 `json:"criterion" yaml:"criterion"`
	FeatureNames []string               `json:"featureNames" yaml:"feature_names"`
	Importances  []diagnosis.Importance `json:"importances" yaml:"importances"`
}

func newModelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Show the feature importances of the decision tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			m, err := diagnosis.LoadService(cfg.ModelPath).Model()
			if err != nil {
				return err
			}
			info := modelInfo{
				Criterion:    m.Criterion(),
				FeatureNames: m.Order().Strings(),
				Importances:  m.Importances(),
			}
			format, _ := cmd.Flags().GetString("output")
			return render(cmd.OutOrStdout(), format, info, func(w io.Writer) {
				displayModel(w, info)
			})
		},
	}
}

func displayModel(w io.Writer, info modelInfo) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(w, "Decision Tree (criterion: %s)\n", info.Criterion)
	fmt.Fprintln(w, "Kontribusi setiap fitur dalam pengambilan keputusan:")
	for _, imp := range info.Importances {
		fmt.Fprintf(w, "  - %s: %.3f (%.1f%%)\n", imp.Label, imp.Importance, imp.Importance*100)
	}
}
