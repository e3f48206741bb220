package symptom

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a value is outside a feature's trained vocabulary.
var ErrUnknownCategory = errors.New("unknown category")

// ErrUnknownFeature is returned for a feature name outside the closed set.
var ErrUnknownFeature = errors.New("unknown feature")

// Feature is one categorical symptom dimension.
type Feature string

const (
	Demam            Feature = "demam"
	Batuk            Feature = "batuk"
	SesakNafas       Feature = "sesak_nafas"
	SakitTenggorokan Feature = "sakit_tenggorokan"
	KehilanganRasa   Feature = "kehilangan_rasa"
)

var (
	allFeatures = []Feature{Demam, Batuk, SesakNafas, SakitTenggorokan, KehilanganRasa}

	choices = map[Feature][]string{
		Demam:            {"Tinggi", "Sedang", "Rendah"},
		Batuk:            {"Parah", "Ringan", "Tidak"},
		SesakNafas:       {"Ya", "Tidak"},
		SakitTenggorokan: {"Ya", "Tidak"},
		KehilanganRasa:   {"Ya", "Tidak"},
	}

	labels = map[Feature]string{
		Demam:            "Demam",
		Batuk:            "Batuk",
		SesakNafas:       "Sesak Nafas",
		SakitTenggorokan: "Sakit Tenggorokan",
		KehilanganRasa:   "Kehilangan Rasa/Penciuman",
	}

	hints = map[Feature]string{
		Demam:            "Tinggi (>38°C), Sedang (37.5-38°C), Rendah (<37.5°C)",
		Batuk:            "Parah (terus-menerus), Ringan (sesekali), Tidak (tidak ada)",
		SesakNafas:       "Ya (sulit bernafas), Tidak (nafas normal)",
		SakitTenggorokan: "Ya (nyeri saat menelan), Tidak (normal)",
		KehilanganRasa:   "Ya (hilang penciuman/pengecap), Tidak (normal)",
	}
)

// Features returns every known feature in form order.
func Features() []Feature {
	out := make([]Feature, len(allFeatures))
	copy(out, allFeatures)
	return out
}

// ParseFeature maps a column or field name to a Feature.
func ParseFeature(name string) (Feature, error) {
	f := Feature(name)
	if _, ok := choices[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFeature, name)
	}
	return f, nil
}

// Choices returns the dropdown values for f, empty for an unknown feature.
func (f Feature) Choices() []string {
	c := choices[f]
	out := make([]string, len(c))
	copy(out, c)
	return out
}

// Label is the human-facing name of the feature.
func (f Feature) Label() string { return labels[f] }

// Hint explains what each choice means.
func (f Feature) Hint() string { return hints[f] }

// Allows reports whether value is one of the feature's dropdown choices.
func (f Feature) Allows(value string) bool {
	for _, c := range choices[f] {
		if c == value {
			return true
		}
	}
	return false
}

// Input is one set of reported symptoms. An empty field means the symptom was not given.
type Input struct {
	Demam            string `json:"demam" yaml:"demam"`
	Batuk            string `json:"batuk" yaml:"batuk"`
	SesakNafas       string `json:"sesak_nafas" yaml:"sesak_nafas"`
	SakitTenggorokan string `json:"sakit_tenggorokan" yaml:"sakit_tenggorokan"`
	KehilanganRasa   string `json:"kehilangan_rasa" yaml:"kehilangan_rasa"`
}

// Value returns the value reported for f and whether it was present.
func (in Input) Value(f Feature) (string, bool) {
	var v string
	switch f {
	case Demam:
		v = in.Demam
	case Batuk:
		v = in.Batuk
	case SesakNafas:
		v = in.SesakNafas
	case SakitTenggorokan:
		v = in.SakitTenggorokan
	case KehilanganRasa:
		v = in.KehilanganRasa
	}
	return v, v != ""
}

// Validate checks every present value against the dropdown choices.
func (in Input) Validate() error {
	for _, f := range allFeatures {
		v, ok := in.Value(f)
		if ok && !f.Allows(v) {
			return fmt.Errorf("%w: %s=%q", ErrUnknownCategory, f, v)
		}
	}
	return nil
}
