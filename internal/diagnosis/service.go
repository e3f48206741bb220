package diagnosis

import (
	"fmt"

	"github.com/Skufu/diagnosa/internal/symptom"
)

// Service answers diagnosis requests against a model loaded once at startup.
// A Service without a model reports ErrUnavailable for every request.
type Service struct {
	model   *Model
	loadErr error
}

// NewService wraps an already loaded model. m may be nil.
func NewService(m *Model) *Service {
	return &Service{model: m}
}

// LoadService loads the model at path. A failed load still yields a usable
// Service that reports the model as unavailable.
func LoadService(path string) *Service {
	m, err := LoadModel(path)
	if err != nil {
		return &Service{loadErr: err}
	}
	return &Service{model: m}
}

// Available reports whether a model is loaded.
func (s *Service) Available() bool { return s != nil && s.model != nil }

// Err explains why the model is unavailable, or nil.
func (s *Service) Err() error {
	if s == nil {
		return ErrUnavailable
	}
	if s.model == nil {
		if s.loadErr != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, s.loadErr)
		}
		return ErrUnavailable
	}
	return nil
}

// Model returns the loaded model or ErrUnavailable.
func (s *Service) Model() (*Model, error) {
	if !s.Available() {
		return nil, s.Err()
	}
	return s.model, nil
}

// Diagnose validates in against the dropdown choices and runs the model.
func (s *Service) Diagnose(in symptom.Input) (Result, error) {
	m, err := s.Model()
	if err != nil {
		return Result{}, err
	}
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	return m.Diagnose(in)
}
