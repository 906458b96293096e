package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mbolis/online-survey/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store owns the survey collection. Implementations must keep ids unique
// and strictly increasing, and List must return surveys in creation order.
type Store interface {
	List(ctx context.Context) ([]model.Survey, error)
	Create(ctx context.Context, fields model.Fields) (model.Survey, error)
}

var ErrValidation = errors.New("validation failed")

// ValidationError is returned by Create when a required field is missing.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", titleCase(e.Field))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

func validate(fields model.Fields) error {
	if !model.Truthy(fields[model.FieldTitle]) {
		return &ValidationError{Field: model.FieldTitle}
	}
	return nil
}

var surveysCreated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "survey_surveys_created_total",
		Help: "Surveys created, by store backend.",
	},
	[]string{"backend"},
)
