package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"pinmap/internal/pkg/auth/jwt"
	"pinmap/internal/pkg/logx"
	"pinmap/internal/pkg/metrics"
	"pinmap/internal/pkg/resp"
)

// Router sets up the HTTP routing table. Identity is extracted for every /api route but
// never enforced here; each operation is gated individually.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	corsAllowedOrigins := deps.Config.AllowedOrigins
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "PinMap Server",
		})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Get("/map/config", HandleMapConfig(deps))
		api.Get("/me", HandleMe(deps))

		api.Route("/pins", func(pins chi.Router) {
			pins.Get("/", HandleListPins(deps))
			pins.With(deps.CreateLimiter.Middleware).Post("/", HandleCreatePin(deps))
			pins.Delete("/{pinID}", HandleDeletePin(deps))

			pins.Post("/image", HandleUploadImage(deps))
			pins.Post("/image/presign", HandlePresignImageUpload(deps))
			pins.Get("/image/presign-download", HandlePresignImageDownload(deps))
		})
	})

	return r
}
