package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"recus/internal/http/handlers"
	"recus/internal/middleware"
)

// NewRouter assembles the HTTP surface. Receipt issuance and reads sit
// behind the JWT check plus the allow-list gate; auth and the standalone
// send endpoint are public but rate limited.
func NewRouter(app *handlers.App, countryLookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(app.Cfg.CORSAllowedOrigins))
	r.Use(middleware.I18N("fr", countryLookup))
	r.Use(middleware.Logger(app.Logger))

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(app.Cfg.RateLimitPerMin, time.Minute))

		r.Route("/v1/auth", func(r chi.Router) {
			r.Post("/signup", app.AuthSignup)
			r.Post("/signin", app.AuthSignin)
			r.Post("/signout", app.AuthSignout)
			r.Post("/reset", app.AuthResetRequest)
			r.Post("/reset/confirm", app.AuthResetConfirm)
		})

		r.Post("/v1/send-receipt", app.SendReceipt)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(app.Tokens))

		r.Get("/v1/session", app.Session)

		r.Group(func(r chi.Router) {
			r.Use(app.RequireAdmin)
			r.Post("/v1/receipts", app.ReceiptsCreate)
			r.Get("/v1/receipts", app.ReceiptsList)
			r.Get("/v1/receipts/{number}", app.ReceiptsGet)
		})
	})

	// Filesystem-backed archives are served straight from disk.
	if app.Cfg.StorageBackend == "filesystem" {
		fs := stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.Dir(app.Cfg.StoragePath)))
		r.Get("/static/*", fs.ServeHTTP)
	}

	return r
}
