package dataset

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Skufu/diagnosa/internal/symptom"
)

// ErrUnavailable is returned when the dataset could not be loaded.
var ErrUnavailable = errors.New("dataset unavailable")

// Record is one patient row of the symptom dataset.
type Record struct {
	Demam            string `json:"demam" db:"demam"`
	Batuk            string `json:"batuk" db:"batuk"`
	SesakNafas       string `json:"sesak_nafas" db:"sesak_nafas"`
	SakitTenggorokan string `json:"sakit_tenggorokan" db:"sakit_tenggorokan"`
	KehilanganRasa   string `json:"kehilangan_rasa" db:"kehilangan_rasa"`
	CovidPositif     string `json:"covid_positif" db:"covid_positif"`
}

// Value returns the record's value for a symptom column.
func (r Record) Value(f symptom.Feature) string {
	switch f {
	case symptom.Demam:
		return r.Demam
	case symptom.Batuk:
		return r.Batuk
	case symptom.SesakNafas:
		return r.SesakNafas
	case symptom.SakitTenggorokan:
		return r.SakitTenggorokan
	case symptom.KehilanganRasa:
		return r.KehilanganRasa
	}
	return ""
}

// Source yields the dataset rows.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// Table is the dataset as loaded at startup. A Table whose load failed
// reports ErrUnavailable from every accessor.
type Table struct {
	records []Record
	loadErr error
}

// Load reads all records from src once.
func Load(ctx context.Context, src Source) *Table {
	records, err := src.Records(ctx)
	if err != nil {
		return &Table{loadErr: err}
	}
	return &Table{records: records}
}

// NewTable wraps records that are already in memory.
func NewTable(records []Record) *Table {
	return &Table{records: records}
}

// Available reports whether the dataset loaded.
func (t *Table) Available() bool { return t != nil && t.loadErr == nil }

// Err explains why the dataset is unavailable, or nil.
func (t *Table) Err() error {
	if t == nil {
		return ErrUnavailable
	}
	if t.loadErr != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, t.loadErr)
	}
	return nil
}

// Records returns a copy of every row.
func (t *Table) Records() ([]Record, error) {
	if err := t.Err(); err != nil {
		return nil, err
	}
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out, nil
}

// Summary returns the counts shown on the data page.
func (t *Table) Summary() (Summary, error) {
	if err := t.Err(); err != nil {
		return Summary{}, err
	}
	return Summarize(t.records), nil
}

// ValueCount is how often one category occurs in a column.
type ValueCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Summary holds the outcome totals and per-symptom distributions.
type Summary struct {
	Total        int                              `json:"total" yaml:"total"`
	Positive     int                              `json:"positive" yaml:"positive"`
	Negative     int                              `json:"negative" yaml:"negative"`
	Distribution map[symptom.Feature][]ValueCount `json:"distribution" yaml:"distribution"`
}

// DistributionFeatures are the columns whose value counts are reported.
var DistributionFeatures = []symptom.Feature{
	symptom.Demam,
	symptom.Batuk,
	symptom.SesakNafas,
	symptom.KehilanganRasa,
}

// Summarize counts outcomes and symptom values. Rows whose covid_positif is
// neither "Ya" nor "Tidak" count toward Total only.
func Summarize(records []Record) Summary {
	s := Summary{
		Total:        len(records),
		Distribution: make(map[symptom.Feature][]ValueCount, len(DistributionFeatures)),
	}
	for _, r := range records {
		switch r.CovidPositif {
		case "Ya":
			s.Positive++
		case "Tidak":
			s.Negative++
		}
	}
	for _, f := range DistributionFeatures {
		s.Distribution[f] = valueCounts(records, f)
	}
	return s
}

// valueCounts orders by count descending, then value ascending.
func valueCounts(records []Record, f symptom.Feature) []ValueCount {
	counts := map[string]int{}
	for _, r := range records {
		counts[r.Value(f)]++
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
