package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Skufu/diagnosa/internal/diagnosis"
	"github.com/Skufu/diagnosa/internal/symptom"
)

func newDiagnoseCmd() *cobra.Command {
	var input symptom.Input

	cmd := &cobra.Command{
		Use:   "diagnose [flags]",
		Short: "Predict COVID-19 from reported symptoms",
		Long: `Predict COVID-19 from reported symptoms. Symptoms left out are treated
as unknown and encoded as 0.

Examples:
  diagnosa diagnose --demam Tinggi --batuk Parah --sesak-nafas Ya \
    --sakit-tenggorokan Ya --kehilangan-rasa Ya

  diagnosa diagnose --demam Rendah -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			svc := diagnosis.LoadService(cfg.ModelPath)
			result, err := svc.Diagnose(input)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("output")
			return render(cmd.OutOrStdout(), format, result, func(w io.Writer) {
				displayDiagnosis(w, input, result)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Demam, "demam", "", choiceUsage(symptom.Demam))
	flags.StringVar(&input.Batuk, "batuk", "", choiceUsage(symptom.Batuk))
	flags.StringVar(&input.SesakNafas, "sesak-nafas", "", choiceUsage(symptom.SesakNafas))
	flags.StringVar(&input.SakitTenggorokan, "sakit-tenggorokan", "", choiceUsage(symptom.SakitTenggorokan))
	flags.StringVar(&input.KehilanganRasa, "kehilangan-rasa", "", choiceUsage(symptom.KehilanganRasa))
	return cmd
}

func choiceUsage(f symptom.Feature) string {
	return fmt.Sprintf("%s: %s", f.Label(), f.Hint())
}

func displayDiagnosis(w io.Writer, input symptom.Input, result diagnosis.Result) {
	bold := color.New(color.Bold)

	fmt.Fprintln(w)
	bold.Fprintln(w, "Gejala yang dimasukkan:")
	for _, f := range symptom.Features() {
		v, ok := input.Value(f)
		if !ok {
			v = "-"
		}
		fmt.Fprintf(w, "  - %s: %s\n", f.Label(), v)
	}
	fmt.Fprintln(w)

	headline := color.New(color.FgGreen, color.Bold)
	if result.Category == diagnosis.Positive {
		headline = color.New(color.FgRed, color.Bold)
	}
	headline.Fprintf(w, "%s COVID-19\n", result.Category)
	fmt.Fprintf(w, "Probabilitas: %s\n\n", result.Percent())

	bold.Fprintln(w, "Rekomendasi:")
	for i, r := range result.Recommendations {
		fmt.Fprintf(w, "  %d. %s\n", i+1, r)
	}
}
