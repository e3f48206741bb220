package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/diagnosa/internal/symptom"
)

const datasetPath = "../../data/data_gejala_covid19.csv"

type failingSource struct{}

func (failingSource) Records(ctx context.Context) ([]Record, error) {
	return nil, errors.New("connection refused")
}

func TestReadCSV(t *testing.T) {
	in := "covid_positif, Demam,batuk,sesak_nafas,sakit_tenggorokan,kehilangan_rasa,umur\n" +
		"Ya,Tinggi,Parah,Ya,Ya,Ya,40\n" +
		"Tidak, Rendah,Tidak,Tidak,Tidak,Tidak,22\n"
	records, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Record{
		Demam: "Tinggi", Batuk: "Parah", SesakNafas: "Ya", SakitTenggorokan: "Ya", KehilanganRasa: "Ya", CovidPositif: "Ya",
	}, records[0])
	assert.Equal(t, "Rendah", records[1].Demam)
	assert.Equal(t, "Tidak", records[1].CovidPositif)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"missing column": "demam,batuk\nTinggi,Parah\n",
		"ragged row":     "demam,batuk,sesak_nafas,sakit_tenggorokan,kehilangan_rasa,covid_positif\nTinggi,Parah\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestLoad_CSVFile(t *testing.T) {
	table := Load(context.Background(), CSVSource{Path: datasetPath})
	require.True(t, table.Available())

	records, err := table.Records()
	require.NoError(t, err)
	assert.Len(t, records, 25)

	s, err := table.Summary()
	require.NoError(t, err)
	assert.Equal(t, 25, s.Total)
	assert.Equal(t, 12, s.Positive)
	assert.Equal(t, 13, s.Negative)
	assert.Equal(t, []ValueCount{{"Sedang", 9}, {"Tinggi", 9}, {"Rendah", 7}}, s.Distribution[symptom.Demam])
	assert.Equal(t, []ValueCount{{"Ringan", 9}, {"Parah", 8}, {"Tidak", 8}}, s.Distribution[symptom.Batuk])
	assert.Equal(t, []ValueCount{{"Tidak", 15}, {"Ya", 10}}, s.Distribution[symptom.SesakNafas])
	assert.Equal(t, []ValueCount{{"Tidak", 14}, {"Ya", 11}}, s.Distribution[symptom.KehilanganRasa])
	assert.NotContains(t, s.Distribution, symptom.SakitTenggorokan)
}

func TestLoad_MissingFile(t *testing.T) {
	table := Load(context.Background(), CSVSource{Path: filepath.Join(t.TempDir(), "none.csv")})
	assert.False(t, table.Available())

	_, err := table.Records()
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = table.Summary()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLoad_SourceError(t *testing.T) {
	table := Load(context.Background(), failingSource{})
	assert.ErrorIs(t, table.Err(), ErrUnavailable)
	assert.Contains(t, table.Err().Error(), "connection refused")
}

func TestSummarize_UnknownOutcome(t *testing.T) {
	s := Summarize([]Record{{CovidPositif: "Ya"}, {CovidPositif: "?"}, {CovidPositif: "Tidak"}})
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Positive)
	assert.Equal(t, 1, s.Negative)
}

func TestSummarize_Empty(t *testing.T) {
	s := NewTable(nil)
	sum, err := s.Summary()
	require.NoError(t, err)
	assert.Zero(t, sum.Total)
	assert.Empty(t, sum.Distribution[symptom.Demam])
}

func TestRecords_ReturnsCopy(t *testing.T) {
	table := NewTable([]Record{{Demam: "Tinggi"}})
	records, err := table.Records()
	require.NoError(t, err)
	records[0].Demam = "Rendah"

	again, err := table.Records()
	require.NoError(t, err)
	assert.Equal(t, "Tinggi", again[0].Demam)
}

// Runs against a real database when DATABASE_URL is set.
func TestPostgresSource_RoundTrip(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, "DROP TABLE IF EXISTS gejala_covid19")
	require.NoError(t, err)

	records, err := CSVSource{Path: datasetPath}.Records(ctx)
	require.NoError(t, err)

	src := PostgresSource{Pool: pool}
	n, err := src.Import(ctx, records)
	require.NoError(t, err)
	assert.EqualValues(t, 25, n)

	got, err := src.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
