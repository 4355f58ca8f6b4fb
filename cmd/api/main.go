package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "cinecluster/docs" // swagger docs

	"cinecluster/internal/cache"
	"cinecluster/internal/config"
	"cinecluster/internal/dataset"
	"cinecluster/internal/db"
	"cinecluster/internal/handler"
	"cinecluster/internal/logging"
	"cinecluster/internal/repository"
	"cinecluster/internal/service"
	"cinecluster/internal/tmdb"
)

// @title CineCluster Dashboard API
// @version 1.0
// @description Exploración de clusters de películas (PCA / NMF) con posters de TMDB
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("no se pudo cargar la configuración")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// datasets
	reg := dataset.NewRegistry(map[dataset.Algorithm]string{
		dataset.PCA: cfg.PCADatasetPath,
		dataset.NMF: cfg.NMFDatasetPath,
	})
	if err := reg.Load(); err != nil {
		logging.Fatal().Err(err).Msg("no se pudieron leer los datasets de clustering")
	}

	// Redis (opcional) + cache en memoria
	rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPass)
	if err != nil {
		logging.Warn().Err(err).Msg("[cache] sin Redis, se usa solo memoria")
		rdb = nil
	}
	posterCache, err := cache.New(rdb)
	if err != nil {
		logging.Fatal().Err(err).Msg("no se pudo crear la cache")
	}
	defer posterCache.Close()

	// Mongo (opcional) para el historial
	mdb, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logging.Warn().Err(err).Msg("[mongo] historial deshabilitado")
		mdb = nil
	}
	defer func() { _ = db.Disconnect(context.Background(), mdb) }()

	if cfg.TMDBAPIToken == "" {
		logging.Warn().Msg("[tmdb] TMDB_API_TOKEN vacío, los posters van a fallar")
	}

	// repos
	movieRepo := repository.NewMovieRepository(reg)

	var (
		historyStore  service.HistoryStore
		historyReader service.HistoryReader
	)
	if mdb != nil {
		historyRepo := repository.NewHistoryRepository(mdb)
		historyStore, historyReader = historyRepo, historyRepo
	}

	// services
	tmdbClient := tmdb.NewClient(tmdb.Options{
		BaseURL:      cfg.TMDBBaseURL,
		ImageBaseURL: cfg.TMDBImageBaseURL,
		Token:        cfg.TMDBAPIToken,
	})
	posterSvc := service.NewPosterService(tmdbClient, posterCache, cfg.PosterCacheTTL)
	catalogSvc := service.NewCatalogService(movieRepo, posterSvc)
	recSvc := service.NewRecommendService(movieRepo, posterSvc, historyStore)
	authSvc := service.NewAuthService(cfg.AdminUser, cfg.AdminPasswordHash, cfg.JWTSecret)
	adminSvc := service.NewAdminService(movieRepo, historyReader)

	router := handler.NewRouter(handler.Deps{
		Catalog:         catalogSvc,
		Recommend:       recSvc,
		Posters:         posterSvc,
		Auth:            authSvc,
		Admin:           adminSvc,
		JWTSecret:       cfg.JWTSecret,
		PosterRateLimit: cfg.PosterRateLimit,
		CORSOrigins:     cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("port", cfg.HTTPPort).Msg("HTTP escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("error en el servidor HTTP")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("apagando servidor…")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("error cerrando el servidor HTTP")
	}
}
