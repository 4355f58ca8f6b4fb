// dashctl explora los datasets de clustering desde la terminal, sin levantar la API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cinecluster/internal/cache"
	"cinecluster/internal/dataset"
	"cinecluster/internal/logging"
	"cinecluster/internal/repository"
	"cinecluster/internal/service"
	"cinecluster/internal/tmdb"
)

var (
	// flags globales
	pcaPath   string
	nmfPath   string
	algoFlag  string
	posters   bool
	tmdbToken string
	asJSON    bool
	verbose   bool
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "dashctl",
	Short: "Explorador de clusters de películas (PCA / NMF)",
	Long: `dashctl lee los CSV de clustering y responde las mismas consultas que el dashboard:
géneros, filtro por género, recomendaciones del mismo cluster y estadísticas.

Con --posters resuelve las URLs de los posters en TMDB (requiere TMDB_API_TOKEN).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logging.Init(logging.Config{Level: level, Format: "console"})
	},
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&pcaPath, "pca", envOr("PCA_DATASET_PATH", "movies_w_clusters/movies_clustered_pca_3d.csv"), "CSV del clustering PCA")
	rootCmd.PersistentFlags().StringVar(&nmfPath, "nmf", envOr("NMF_DATASET_PATH", "movies_w_clusters/nmf_movies_with_clusters.csv"), "CSV del clustering NMF")
	rootCmd.PersistentFlags().StringVarP(&algoFlag, "algo", "a", "pca", "algoritmo: pca o nmf")
	rootCmd.PersistentFlags().BoolVar(&posters, "posters", false, "resolver posters en TMDB")
	rootCmd.PersistentFlags().StringVar(&tmdbToken, "tmdb-token", os.Getenv("TMDB_API_TOKEN"), "token Bearer de TMDB")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "salida JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "logs de debug")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "timeout total")

	rootCmd.AddCommand(genresCmd, filterCmd, recommendCmd, statsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// app agrupa los servicios que usan los subcomandos.
type app struct {
	catalog   *service.CatalogService
	recommend *service.RecommendService
	algo      dataset.Algorithm
}

func newApp() (*app, error) {
	algo, err := dataset.ParseAlgorithm(algoFlag)
	if err != nil {
		return nil, err
	}

	reg := dataset.NewRegistry(map[dataset.Algorithm]string{
		dataset.PCA: pcaPath,
		dataset.NMF: nmfPath,
	})
	if err := reg.Load(); err != nil {
		return nil, fmt.Errorf("leyendo datasets: %w", err)
	}
	movies := repository.NewMovieRepository(reg)

	var posterSvc *service.PosterService
	if posters {
		c, err := cache.New(nil)
		if err != nil {
			return nil, err
		}
		client := tmdb.NewClient(tmdb.Options{
			BaseURL:      envOr("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			ImageBaseURL: envOr("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p"),
			Token:        tmdbToken,
		})
		posterSvc = service.NewPosterService(client, c, time.Hour)
	}

	return &app{
		catalog:   service.NewCatalogService(movies, posterSvc),
		recommend: service.NewRecommendService(movies, posterSvc, nil),
		algo:      algo,
	}, nil
}
