package diagnosis

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Skufu/diagnosa/internal/symptom"
	"github.com/Skufu/diagnosa/internal/tree"
)

// ErrInvalidArtifact is returned when a model file parses but cannot be used.
var ErrInvalidArtifact = errors.New("invalid model artifact")

// artifact is the on-disk model document. JSON files load too.
type artifact struct {
	FeatureNames []string            `yaml:"feature_names"`
	Encoders     map[string][]string `yaml:"encoders"`
	Model        tree.DecisionTree   `yaml:"model"`
}

// Model bundles a fitted tree with the encoders and feature order it was
// trained with. It is immutable and safe for concurrent use.
type Model struct {
	tree     *tree.DecisionTree
	order    symptom.Order
	encoding symptom.Encoding
}

// Importance is one feature's share of the tree's impurity decrease.
type Importance struct {
	Feature    symptom.Feature `json:"feature" yaml:"feature"`
	Label      string          `json:"label" yaml:"label"`
	Importance float64         `json:"importance" yaml:"importance"`
}

// LoadModel reads and validates a model artifact from path.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	m, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseModel decodes an artifact and checks that its feature order, encoders
// and tree agree with each other and with the known symptom set.
func ParseModel(data []byte) (*Model, error) {
	var a artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if len(a.FeatureNames) == 0 {
		return nil, fmt.Errorf("%w: feature_names is empty", ErrInvalidArtifact)
	}

	order := make(symptom.Order, 0, len(a.FeatureNames))
	for _, name := range a.FeatureNames {
		f, err := symptom.ParseFeature(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
		}
		if order.Index(f) >= 0 {
			return nil, fmt.Errorf("%w: feature %s listed twice", ErrInvalidArtifact, f)
		}
		order = append(order, f)
	}

	enc := make(symptom.Encoding, len(order))
	for _, f := range order {
		classes, ok := a.Encoders[string(f)]
		if !ok {
			return nil, fmt.Errorf("%w: no encoder for %s", ErrInvalidArtifact, f)
		}
		vocab, err := symptom.NewVocabulary(classes)
		if err != nil {
			return nil, fmt.Errorf("%w: encoder %s: %w", ErrInvalidArtifact, f, err)
		}
		for _, c := range f.Choices() {
			if _, ok := vocab.Code(c); !ok {
				return nil, fmt.Errorf("%w: encoder %s does not cover %q", ErrInvalidArtifact, f, c)
			}
		}
		enc[f] = vocab
	}

	t := a.Model
	if t.NumFeatures == 0 {
		t.NumFeatures = len(order)
	}
	if t.NumFeatures != len(order) {
		return nil, fmt.Errorf("%w: tree expects %d features, feature_names has %d", ErrInvalidArtifact, t.NumFeatures, len(order))
	}
	if len(t.Classes) == 0 {
		t.Classes = []int{0, 1}
	}
	if len(t.Classes) != 2 || t.Classes[0] != 0 || t.Classes[1] != 1 {
		return nil, fmt.Errorf("%w: classes must be [0, 1], got %v", ErrInvalidArtifact, t.Classes)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}

	return &Model{tree: &t, order: order, encoding: enc}, nil
}

// Order returns the feature order the tree was fit with.
func (m *Model) Order() symptom.Order {
	out := make(symptom.Order, len(m.order))
	copy(out, m.order)
	return out
}

// Encoding returns the trained encoders.
func (m *Model) Encoding() symptom.Encoding { return m.encoding }

// Classifier exposes the fitted tree.
func (m *Model) Classifier() Classifier { return m.tree }

// Criterion is the split criterion the tree was trained with.
func (m *Model) Criterion() string { return m.tree.Criterion }

// Importances lists feature importances in feature order.
func (m *Model) Importances() []Importance {
	raw := m.tree.Importances()
	out := make([]Importance, len(m.order))
	for i, f := range m.order {
		out[i] = Importance{Feature: f, Label: f.Label(), Importance: raw[i]}
	}
	return out
}

// Diagnose encodes in with the trained encoders and evaluates it.
func (m *Model) Diagnose(in symptom.Input) (Result, error) {
	x, err := symptom.Encode(in, m.order, m.encoding)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(x, m.tree)
}
