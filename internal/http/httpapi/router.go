package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"studio/internal/http/handlers"
	mw "studio/internal/middleware"
)

// Options carry the cross-cutting pieces the router wires in front of the
// handlers.
type Options struct {
	CountryLookup   mw.CountryLookup
	AllowedOrigins  []string
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		mw.Logger(app.Logger),
		mw.CORS(opts.AllowedOrigins),
		mw.Region(opts.CountryLookup),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(mw.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/models", app.Models)
	r.Post("/v1/quotes", app.QuoteCreate)

	r.Route("/v1/generations", func(r chi.Router) {
		r.Post("/", app.GenerationsCreate)
	})

	r.Route("/v1/jobs", func(r chi.Router) {
		r.Get("/", app.JobsList)
		r.Get("/{local_id}", app.JobStatus)
		r.Post("/{local_id}/cancel", app.JobCancel)
	})

	r.Get("/v1/history", app.HistoryList)

	return r
}
