package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"cinecluster/internal/logging"
	"cinecluster/internal/service"
)

// Deps agrupa lo que necesita el router.
type Deps struct {
	Catalog   *service.CatalogService
	Recommend *service.RecommendService
	Posters   *service.PosterService
	Auth      *service.AuthService
	Admin     *service.AdminService

	JWTSecret       string
	PosterRateLimit int
	CORSOrigins     []string
}

func NewRouter(d Deps) http.Handler {
	movieH := NewMovieHandler(d.Catalog)
	recH := NewRecommendHandler(d.Recommend, d.Posters)
	posterH := NewPosterHandler(d.Posters)
	authH := NewAuthHandler(d.Auth)
	adminH := NewAdminHandler(d.Admin)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware())
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", Health)
	r.Post("/auth/login", authH.Login)
	r.Get("/titles", movieH.Titles)

	r.Route("/datasets/{algo}", func(r chi.Router) {
		r.Get("/stats", movieH.Stats)
		r.Get("/genres", movieH.Genres)

		r.Get("/movies", movieH.Filter)
		r.Get("/movies/showcase", movieH.Showcase)
		r.Get("/movies/by-title", movieH.ByTitle)
		r.Get("/movies/{tmdbId}/recommendations", recH.GetRecommendations)
	})

	r.Route("/posters/{tmdbId}", func(r chi.Router) {
		r.Get("/", posterH.GetPoster)

		// proxy de imágenes: limitado por IP
		limit := d.PosterRateLimit
		if limit <= 0 {
			limit = 120
		}
		r.With(httprate.LimitByIP(limit, time.Minute)).Get("/image", posterH.GetPosterImage)
	})

	// WebSocket
	r.Get("/ws/recommendations", recH.GetRecommendationsWS)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	r.Group(func(r chi.Router) {
		r.Use(JWTAuth(d.JWTSecret))
		r.Use(AdminOnly())

		MountAdminRoutes(r, adminH)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
