package store

import (
	"context"
	"sync"
	"time"

	"github.com/mbolis/online-survey/model"
)

// Memory keeps surveys in process memory. State lives as long as the value.
type Memory struct {
	mu      sync.Mutex
	nextID  int
	surveys []model.Survey
	now     func() time.Time
}

type MemoryOption func(*Memory)

// WithClock overrides the source of createdAt timestamps.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		nextID:  1,
		surveys: []model.Survey{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) List(_ context.Context) ([]model.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	surveys := make([]model.Survey, len(m.surveys))
	for i, s := range m.surveys {
		s.Fields = s.Fields.Clone()
		surveys[i] = s
	}
	return surveys, nil
}

func (m *Memory) Create(_ context.Context, fields model.Fields) (model.Survey, error) {
	if err := validate(fields); err != nil {
		return model.Survey{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	survey := model.Survey{
		ID:        m.nextID,
		CreatedAt: m.now(),
		Fields:    fields.Clone(),
	}
	m.nextID++
	m.surveys = append(m.surveys, survey)

	surveysCreated.WithLabelValues("memory").Inc()

	survey.Fields = survey.Fields.Clone()
	return survey, nil
}
