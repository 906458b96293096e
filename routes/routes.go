package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbolis/online-survey/app"
	"github.com/mbolis/online-survey/public"
	"github.com/mbolis/online-survey/routes/middlewares"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Wire(app app.App) http.Handler {
	root := newRouter()

	root.Get("/health", Health(time.Now))
	root.Method(http.MethodGet, "/metrics", promhttp.Handler())

	root.Mount("/api", apiRouter(app))
	root.Mount("/", servePublicFiles())

	return root
}

// newRouter returns the root router with the shared middleware stack.
// Metrics sits outside Recoverer so recovered panics are counted as 500s.
func newRouter() *chi.Mux {
	root := chi.NewRouter()
	root.Use(
		middleware.RequestID,
		middleware.RealIP,
		middlewares.RequestLogger,
		middlewares.Metrics,
		middleware.Recoverer,
	)
	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/surveys", ListSurveys(app))
	api.Post("/surveys", CreateSurvey(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.FS(public.Files))
}
