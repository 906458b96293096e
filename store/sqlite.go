package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mbolis/online-survey/model"
)

// SQLite keeps surveys in the survey table created by the database package.
// Ids come from AUTOINCREMENT, so they are never reused.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, now: time.Now}
}

func (s *SQLite) List(ctx context.Context) ([]model.Survey, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fields, created_at
		FROM survey
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	defer rows.Close()

	surveys := []model.Survey{}
	for rows.Next() {
		var (
			survey model.Survey
			fields string
		)
		err = rows.Scan(&survey.ID, &fields, &survey.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("list surveys: scan: %w", err)
		}

		err = json.Unmarshal([]byte(fields), &survey.Fields)
		if err != nil {
			return nil, fmt.Errorf("list surveys: parse fields of %d: %w", survey.ID, err)
		}
		survey.Fields = survey.Fields.Clone()

		surveys = append(surveys, survey)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	return surveys, nil
}

func (s *SQLite) Create(ctx context.Context, fields model.Fields) (model.Survey, error) {
	if err := validate(fields); err != nil {
		return model.Survey{}, err
	}

	survey := model.Survey{
		CreatedAt: s.now().UTC(),
		Fields:    fields.Clone(),
	}

	fieldsJson, err := json.Marshal(survey.Fields)
	if err != nil {
		return model.Survey{}, fmt.Errorf("create survey: encode fields: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO survey (fields, created_at) VALUES (?, ?)
		RETURNING id`,
		string(fieldsJson),
		survey.CreatedAt,
	).Scan(&survey.ID)
	if err != nil {
		return model.Survey{}, fmt.Errorf("create survey: %w", err)
	}

	surveysCreated.WithLabelValues("sqlite").Inc()
	return survey, nil
}
