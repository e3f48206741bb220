package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var requiredColumns = []string{
	"demam", "batuk", "sesak_nafas", "sakit_tenggorokan", "kehilangan_rasa", "covid_positif",
}

// CSVSource reads the dataset from a CSV file with a header row. Columns are
// matched by name; extra columns are ignored.
type CSVSource struct {
	Path string
}

func (s CSVSource) Records(ctx context.Context) ([]Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses dataset rows from r.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := map[string]int{}
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("dataset is missing column %q", col)
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		get := func(col string) string {
			return strings.TrimSpace(row[index[col]])
		}
		records = append(records, Record{
			Demam:            get("demam"),
			Batuk:            get("batuk"),
			SesakNafas:       get("sesak_nafas"),
			SakitTenggorokan: get("sakit_tenggorokan"),
			KehilanganRasa:   get("kehilangan_rasa"),
			CovidPositif:     get("covid_positif"),
		})
	}
	return records, nil
}
