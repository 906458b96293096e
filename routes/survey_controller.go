package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/online-survey/app"
	"github.com/mbolis/online-survey/httpx"
	"github.com/mbolis/online-survey/log"
	"github.com/mbolis/online-survey/model"
	"github.com/mbolis/online-survey/store"
)

// maxBodyBytes caps survey creation payloads.
const maxBodyBytes = 100 << 10

type SurveyList struct {
	Surveys []model.Survey `json:"surveys"`
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveys, err := app.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "store.list_surveys", err)
			return
		}

		render.JSON(w, r, SurveyList{Surveys: surveys})
	}
}

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := decodeFields(w, r)
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			httpx.LogStatusMsg(w, r, http.StatusRequestEntityTooLarge, log.DebugLevel, "request.parse_body", "Request body too large")
			return
		case err != nil:
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Invalid JSON body")
			return
		}

		survey, err := app.Create(r.Context(), fields)
		if err != nil {
			var invalid *store.ValidationError
			if errors.As(err, &invalid) {
				httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "store.create_survey.validate", "%s", invalid.Error())
				return
			}
			httpx.LogInternalError(w, r, "store.create_survey", err)
			return
		}

		log.Debugf("store.create_survey: created survey %d (%v)", survey.ID, survey.Title())

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, survey)
	}
}

var errTrailingData = errors.New("unexpected data after JSON value")

// decodeFields reads a single JSON value from the request body. Bodies that
// are not declared as JSON are ignored, and an empty body reads as {}.
func decodeFields(w http.ResponseWriter, r *http.Request) (model.Fields, error) {
	fields := model.Fields{}
	if render.GetRequestContentType(r) != render.ContentTypeJSON {
		return fields, nil
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(&fields)
	if errors.Is(err, io.EOF) {
		return model.Fields{}, nil
	}
	if err != nil {
		return nil, err
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, errTrailingData
	}
	return fields, nil
}
