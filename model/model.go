package model

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"time"
)

// TimeFormat is the wire format of every timestamp the API emits:
// UTC, millisecond precision, ISO-8601.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Well-known survey field names.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldQuestions   = "questions"
	FieldCreatedAt   = "createdAt"
)

// Fields holds the caller-supplied attributes of a survey, stored as decoded.
type Fields map[string]any

// Clone returns a deep copy, minus the store-assigned keys. Nested arrays
// and objects are copied too, so the clone shares no mutable state with f.
func (f Fields) Clone() Fields {
	c := make(Fields, len(f))
	for k, v := range f {
		if k == FieldID || k == FieldCreatedAt {
			continue
		}
		c[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case []any:
		c := make([]any, len(v))
		for i, e := range v {
			c[i] = cloneValue(e)
		}
		return c
	case map[string]any:
		c := make(map[string]any, len(v))
		for k, e := range v {
			c[k] = cloneValue(e)
		}
		return c
	case Fields:
		c := make(Fields, len(v))
		for k, e := range v {
			c[k] = cloneValue(e)
		}
		return c
	case []string:
		return append([]string(nil), v...)
	}
	return v
}

type Survey struct {
	ID        int
	CreatedAt time.Time
	Fields    Fields
}

func (s Survey) Title() any {
	return s.Fields[FieldTitle]
}

// MarshalJSON writes id first, then title, description and questions when
// present, then any other caller fields in key order, and createdAt last.
func (s Survey) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')

	write := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	if err := write(FieldID, s.ID); err != nil {
		return nil, err
	}

	known := []string{FieldTitle, FieldDescription, FieldQuestions}
	for _, key := range known {
		if v, ok := s.Fields[key]; ok {
			if err := write(key, v); err != nil {
				return nil, err
			}
		}
	}

	extra := make([]string, 0, len(s.Fields))
	for key := range s.Fields {
		switch key {
		case FieldID, FieldTitle, FieldDescription, FieldQuestions, FieldCreatedAt:
			continue
		}
		extra = append(extra, key)
	}
	sort.Strings(extra)
	for _, key := range extra {
		if err := write(key, s.Fields[key]); err != nil {
			return nil, err
		}
	}

	if err := write(FieldCreatedAt, s.CreatedAt.UTC().Format(TimeFormat)); err != nil {
		return nil, err
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Truthy reports whether a decoded JSON value counts as present.
// nil, false, 0, NaN and "" are falsy; everything else, including
// empty arrays and objects, is truthy.
func Truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	}
	return true
}
