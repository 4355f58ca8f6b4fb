package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ====== Datasets ======

	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinecluster_dataset_rows",
			Help: "Filas cargadas por dataset de clustering",
		},
		[]string{"algorithm"},
	)

	DatasetSkippedRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinecluster_dataset_skipped_rows",
			Help: "Filas descartadas al cargar (tmdbId o cluster inválido)",
		},
		[]string{"algorithm"},
	)

	DatasetReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinecluster_dataset_reloads_total",
			Help: "Recargas de datasets por resultado",
		},
		[]string{"result"},
	)

	// ====== Recomendaciones / filtros ======

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinecluster_recommendations_total",
			Help: "Consultas de recomendación por algoritmo y resultado",
		},
		[]string{"algorithm", "result"},
	)

	GenreFilters = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinecluster_genre_filters_total",
			Help: "Consultas de filtro por género",
		},
		[]string{"algorithm"},
	)

	// ====== Posters ======

	PosterCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinecluster_poster_cache_total",
			Help: "Lookups de poster en cache (hit|miss)",
		},
		[]string{"result"},
	)

	TMDBRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinecluster_tmdb_requests_total",
			Help: "Requests a TMDB por tipo y resultado",
		},
		[]string{"kind", "result"},
	)

	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinecluster_tmdb_request_duration_seconds",
			Help:    "Duración de requests a TMDB",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinecluster_circuit_breaker_state",
			Help: "Estado del circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)
