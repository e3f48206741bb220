package diagnosis

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when no model could be loaded. No inference is attempted.
var ErrUnavailable = errors.New("model unavailable")

// Classifier is a fitted binary classifier over an encoded symptom vector.
type Classifier interface {
	Predict(x []float64) (int, error)
	PredictProba(x []float64) ([]float64, error)
}

// Category is the outcome shown to the user.
type Category string

const (
	Positive Category = "POSITIF"
	Negative Category = "NEGATIF"
)

var (
	positiveRecommendations = []string{
		"Segera lakukan tes PCR untuk konfirmasi",
		"Lakukan isolasi mandiri minimal 5 hari",
		"Gunakan masker dan jaga jarak",
		"Hubungi layanan kesehatan terdekat",
		"Pantau saturasi oksigen secara rutin",
	}
	negativeRecommendations = []string{
		"Tetap jaga protokol kesehatan",
		"Lanjutkan aktivitas dengan hati-hati",
		"Monitor gejala secara berkala",
		"Jaga daya tahan tubuh",
		"Lakukan tes jika muncul gejala baru",
	}
)

// Recommendations returns the fixed advice list for c.
func Recommendations(c Category) []string {
	src := negativeRecommendations
	if c == Positive {
		src = positiveRecommendations
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Result is the outcome of one diagnosis.
type Result struct {
	Label           int      `json:"label" yaml:"label"`
	Category        Category `json:"category" yaml:"category"`
	Probability     float64  `json:"probability" yaml:"probability"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

// Percent is the probability formatted the way the result page shows it.
func (r Result) Percent() string {
	return fmt.Sprintf("%.1f%%", r.Probability*100)
}

// Evaluate runs clf on x. Label 1 is positive and reports p1; anything else
// is negative and reports p0.
func Evaluate(x []float64, clf Classifier) (Result, error) {
	if clf == nil {
		return Result{}, ErrUnavailable
	}
	label, err := clf.Predict(x)
	if err != nil {
		return Result{}, fmt.Errorf("predict: %w", err)
	}
	proba, err := clf.PredictProba(x)
	if err != nil {
		return Result{}, fmt.Errorf("predict proba: %w", err)
	}
	if len(proba) != 2 {
		return Result{}, fmt.Errorf("predict proba: expected 2 classes, got %d", len(proba))
	}

	if label == 1 {
		return Result{
			Label:           1,
			Category:        Positive,
			Probability:     proba[1],
			Recommendations: Recommendations(Positive),
		}, nil
	}
	return Result{
		Label:           0,
		Category:        Negative,
		Probability:     proba[0],
		Recommendations: Recommendations(Negative),
	}, nil
}
