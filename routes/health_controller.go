package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/mbolis/online-survey/model"
)

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func Health(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, HealthStatus{
			Status:    "healthy",
			Timestamp: now().UTC().Format(model.TimeFormat),
		})
	}
}
