package model

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"empty string", "", false},
		{"string", "T", true},
		{"zero string", "0", true},
		{"zero", float64(0), false},
		{"number", float64(3), true},
		{"NaN", math.NaN(), false},
		{"empty array", []any{}, true},
		{"empty object", map[string]any{}, true},
		{"json zero", json.Number("0"), false},
		{"json number", json.Number("1.5"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.value); got != tt.want {
				t.Errorf("Truthy(%#v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSurveyMarshalJSON(t *testing.T) {
	survey := Survey{
		ID:        7,
		CreatedAt: time.Date(2026, 3, 4, 5, 6, 7, 891_000_000, time.FixedZone("CET", 3600)),
		Fields: Fields{
			"title":     "Customer Feedback",
			"questions": []any{"How satisfied are you?"},
			"zeta":      true,
			"alpha":     float64(1),
		},
	}

	data, err := json.Marshal(survey)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"id":7,"title":"Customer Feedback","questions":["How satisfied are you?"],"alpha":1,"zeta":true,"createdAt":"2026-03-04T04:06:07.891Z"}`
	if string(data) != want {
		t.Errorf("got  %s\nwant %s", data, want)
	}
}

func TestSurveyMarshalJSONAssignedFieldsWin(t *testing.T) {
	survey := Survey{
		ID:        2,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Fields:    Fields{"title": "T", "id": float64(99), "createdAt": "yesterday"},
	}

	data, err := json.Marshal(survey)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["id"] != float64(2) {
		t.Errorf("id = %v, want 2", got["id"])
	}
	if got["createdAt"] != "2026-01-01T00:00:00.000Z" {
		t.Errorf("createdAt = %v", got["createdAt"])
	}
}

func TestFieldsCloneIsDeep(t *testing.T) {
	questions := []any{"How satisfied are you?", map[string]any{"text": "Why?"}}
	fields := Fields{
		"title":     "T",
		"questions": questions,
		"meta":      map[string]any{"tags": []any{"a"}},
		"id":        float64(9),
		"createdAt": "now",
	}

	c := fields.Clone()
	questions[0] = "changed"
	questions[1].(map[string]any)["text"] = "changed"
	fields["meta"].(map[string]any)["tags"].([]any)[0] = "changed"

	want := Fields{
		"title":     "T",
		"questions": []any{"How satisfied are you?", map[string]any{"text": "Why?"}},
		"meta":      map[string]any{"tags": []any{"a"}},
	}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("Clone() = %v, want %v", c, want)
	}
}
