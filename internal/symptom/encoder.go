package symptom

import "fmt"

// Vocabulary maps each category a feature was trained on to its integer code.
type Vocabulary struct {
	codes map[string]int
}

// NewVocabulary assigns codes by position: classes[i] encodes to i.
func NewVocabulary(classes []string) (Vocabulary, error) {
	codes := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, dup := codes[c]; dup {
			return Vocabulary{}, fmt.Errorf("duplicate class %q", c)
		}
		codes[c] = i
	}
	return Vocabulary{codes: codes}, nil
}

// Code returns the trained code for category.
func (v Vocabulary) Code(category string) (int, bool) {
	c, ok := v.codes[category]
	return c, ok
}

// Encoding holds the vocabulary of every encoded feature. Read-only once built.
type Encoding map[Feature]Vocabulary

// Order is the feature sequence the classifier was fit with.
type Order []Feature

// Index returns the position of f in the order, or -1.
func (o Order) Index(f Feature) int {
	for i, x := range o {
		if x == f {
			return i
		}
	}
	return -1
}

// Strings returns the feature names in order.
func (o Order) Strings() []string {
	out := make([]string, len(o))
	for i, f := range o {
		out[i] = string(f)
	}
	return out
}

// Encode turns in into the numeric vector the classifier expects.
// Features missing from in encode to 0. A present value that the feature's
// vocabulary does not know is rejected with ErrUnknownCategory.
func Encode(in Input, order Order, enc Encoding) ([]float64, error) {
	vec := make([]float64, 0, len(order))
	for _, f := range order {
		value, ok := in.Value(f)
		if !ok {
			vec = append(vec, 0)
			continue
		}
		vocab, ok := enc[f]
		if !ok {
			return nil, fmt.Errorf("%w: no encoder for %s", ErrUnknownCategory, f)
		}
		code, ok := vocab.Code(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s=%q", ErrUnknownCategory, f, value)
		}
		vec = append(vec, float64(code))
	}
	return vec, nil
}
