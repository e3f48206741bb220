package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectRecords = `
SELECT demam, batuk, sesak_nafas, sakit_tenggorokan, kehilangan_rasa, covid_positif
FROM gejala_covid19
ORDER BY id`

// PostgresSource reads the dataset from the gejala_covid19 table.
type PostgresSource struct {
	Pool *pgxpool.Pool
}

func (s PostgresSource) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.Pool.Query(ctx, selectRecords)
	if err != nil {
		return nil, fmt.Errorf("query dataset: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[Record])
	if err != nil {
		return nil, fmt.Errorf("scan dataset: %w", err)
	}
	return records, nil
}

const createTable = `
CREATE TABLE IF NOT EXISTS gejala_covid19 (
	id                SERIAL PRIMARY KEY,
	demam             TEXT NOT NULL,
	batuk             TEXT NOT NULL,
	sesak_nafas       TEXT NOT NULL,
	sakit_tenggorokan TEXT NOT NULL,
	kehilangan_rasa   TEXT NOT NULL,
	covid_positif     TEXT NOT NULL
)`

// Import creates the table if needed and appends records with COPY.
func (s PostgresSource) Import(ctx context.Context, records []Record) (int64, error) {
	if _, err := s.Pool.Exec(ctx, createTable); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}
	n, err := s.Pool.CopyFrom(ctx,
		pgx.Identifier{"gejala_covid19"},
		[]string{"demam", "batuk", "sesak_nafas", "sakit_tenggorokan", "kehilangan_rasa", "covid_positif"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{r.Demam, r.Batuk, r.SesakNafas, r.SakitTenggorokan, r.KehilanganRasa, r.CovidPositif}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy dataset: %w", err)
	}
	return n, nil
}
