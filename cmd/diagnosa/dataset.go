package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/Skufu/diagnosa/internal/config"
	"github.com/Skufu/diagnosa/internal/dataset"
)

func newDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Summarize the symptom dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			src, closeSrc, err := datasetSource(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeSrc()

			summary, err := dataset.Load(cmd.Context(), src).Summary()
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("output")
			return render(cmd.OutOrStdout(), format, summary, func(w io.Writer) {
				displaySummary(w, summary)
			})
		},
	}
	cmd.AddCommand(newDatasetImportCmd())
	return cmd
}

func newDatasetImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy the dataset CSV into the gejala_covid19 table (needs DATABASE_URL)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL environment variable not set")
			}
			records, err := dataset.CSVSource{Path: cfg.DatasetPath}.Records(cmd.Context())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("create pool: %w", err)
			}
			defer pool.Close()

			n, err := dataset.PostgresSource{Pool: pool}.Import(ctx, records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records\n", n)
			return nil
		},
	}
}

// datasetSource reads the gejala_covid19 table when ENABLE_DB is set and the
// CSV file otherwise, the same choice the server makes at startup.
func datasetSource(ctx context.Context, cfg *config.Config) (dataset.Source, func(), error) {
	if !cfg.EnableDB {
		return dataset.CSVSource{Path: cfg.DatasetPath}, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping db: %w", err)
	}
	return dataset.PostgresSource{Pool: pool}, pool.Close, nil
}

func displaySummary(w io.Writer, s dataset.Summary) {
	bold := color.New(color.Bold)

	fmt.Fprintf(w, "Total Data: %d pasien\n", s.Total)
	color.New(color.FgRed).Fprintf(w, "Positif COVID-19: %d\n", s.Positive)
	color.New(color.FgGreen).Fprintf(w, "Negatif COVID-19: %d\n", s.Negative)

	for _, f := range dataset.DistributionFeatures {
		fmt.Fprintln(w)
		bold.Fprintf(w, "%s:\n", f.Label())
		for _, vc := range s.Distribution[f] {
			fmt.Fprintf(w, "  %-8s %d\n", vc.Value, vc.Count)
		}
	}
}
