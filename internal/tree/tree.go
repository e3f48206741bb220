package tree

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidTree is returned by Validate for a malformed node array.
	ErrInvalidTree = errors.New("invalid decision tree")
	// ErrFeatureCount is returned when an input vector has the wrong length.
	ErrFeatureCount = errors.New("feature count mismatch")
)

const leaf = -1

// Node is one entry of a fitted tree, laid out the way scikit-learn stores
// it: children are indexes into the node array, -1 on leaves, and Value holds
// the training class counts that reached the node.
type Node struct {
	Feature   int       `yaml:"feature" json:"feature"`
	Threshold float64   `yaml:"threshold" json:"threshold"`
	Left      int       `yaml:"left" json:"left"`
	Right     int       `yaml:"right" json:"right"`
	Value     []float64 `yaml:"value" json:"value"`
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool { return n.Left == leaf && n.Right == leaf }

// DecisionTree is a fitted binary decision tree classifier.
type DecisionTree struct {
	Criterion   string `yaml:"criterion" json:"criterion"`
	NumFeatures int    `yaml:"n_features" json:"n_features"`
	Classes     []int  `yaml:"classes" json:"classes"`
	Nodes       []Node `yaml:"nodes" json:"nodes"`
}

// Validate checks the node array is a well formed tree rooted at index 0.
func (t *DecisionTree) Validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes", ErrInvalidTree)
	}
	if len(t.Classes) < 2 {
		return fmt.Errorf("%w: need at least two classes, got %d", ErrInvalidTree, len(t.Classes))
	}
	if t.NumFeatures <= 0 {
		return fmt.Errorf("%w: n_features must be positive", ErrInvalidTree)
	}
	switch t.Criterion {
	case "entropy", "gini", "log_loss":
	default:
		return fmt.Errorf("%w: unsupported criterion %q", ErrInvalidTree, t.Criterion)
	}

	seen := make([]bool, len(t.Nodes))
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[i] {
			return fmt.Errorf("%w: node %d reached twice", ErrInvalidTree, i)
		}
		seen[i] = true

		n := t.Nodes[i]
		if len(n.Value) != len(t.Classes) {
			return fmt.Errorf("%w: node %d has %d class counts, want %d", ErrInvalidTree, i, len(n.Value), len(t.Classes))
		}
		for _, v := range n.Value {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: node %d has class count %v", ErrInvalidTree, i, v)
			}
		}
		if sum(n.Value) <= 0 {
			return fmt.Errorf("%w: node %d has no samples", ErrInvalidTree, i)
		}
		if n.IsLeaf() {
			continue
		}
		if n.Feature < 0 || n.Feature >= t.NumFeatures {
			return fmt.Errorf("%w: node %d splits on feature %d", ErrInvalidTree, i, n.Feature)
		}
		if math.IsNaN(n.Threshold) || math.IsInf(n.Threshold, 0) {
			return fmt.Errorf("%w: node %d has threshold %v", ErrInvalidTree, i, n.Threshold)
		}
		for _, c := range []int{n.Left, n.Right} {
			if c <= i || c >= len(t.Nodes) {
				return fmt.Errorf("%w: node %d has child %d", ErrInvalidTree, i, c)
			}
			stack = append(stack, c)
		}
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: node %d unreachable", ErrInvalidTree, i)
		}
	}
	return nil
}

func (t *DecisionTree) apply(x []float64) (Node, error) {
	if len(x) != t.NumFeatures {
		return Node{}, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), t.NumFeatures)
	}
	n := t.Nodes[0]
	for !n.IsLeaf() {
		if x[n.Feature] <= n.Threshold {
			n = t.Nodes[n.Left]
		} else {
			n = t.Nodes[n.Right]
		}
	}
	return n, nil
}

// Predict returns the class label of the leaf x falls into. Ties go to the
// lower class index.
func (t *DecisionTree) Predict(x []float64) (int, error) {
	n, err := t.apply(x)
	if err != nil {
		return 0, err
	}
	best := 0
	for i, v := range n.Value {
		if v > n.Value[best] {
			best = i
		}
	}
	return t.Classes[best], nil
}

// PredictProba returns the class distribution of the leaf x falls into,
// indexed like Classes.
func (t *DecisionTree) PredictProba(x []float64) ([]float64, error) {
	n, err := t.apply(x)
	if err != nil {
		return nil, err
	}
	total := sum(n.Value)
	out := make([]float64, len(n.Value))
	for i, v := range n.Value {
		out[i] = v / total
	}
	return out, nil
}

// Importances returns the normalized impurity decrease contributed by each
// feature. All zeros for a single-leaf tree.
func (t *DecisionTree) Importances() []float64 {
	imp := make([]float64, t.NumFeatures)
	for _, n := range t.Nodes {
		if n.IsLeaf() {
			continue
		}
		l, r := t.Nodes[n.Left], t.Nodes[n.Right]
		imp[n.Feature] += t.weighted(n) - t.weighted(l) - t.weighted(r)
	}
	total := 0.0
	for _, v := range imp {
		total += v
	}
	if total <= 0 {
		return imp
	}
	for i := range imp {
		imp[i] /= total
	}
	return imp
}

func (t *DecisionTree) weighted(n Node) float64 {
	return sum(n.Value) * t.impurity(n.Value)
}

func (t *DecisionTree) impurity(counts []float64) float64 {
	total := sum(counts)
	if total == 0 {
		return 0
	}
	if t.Criterion == "gini" {
		g := 1.0
		for _, c := range counts {
			p := c / total
			g -= p * p
		}
		return g
	}
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := c / total
		h -= p * math.Log2(p)
	}
	return h
}

func sum(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}
