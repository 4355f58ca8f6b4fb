package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"cinecluster/internal/cache"
	"cinecluster/internal/logging"
	"cinecluster/internal/metrics"
	"cinecluster/internal/models"
	"cinecluster/internal/tmdb"
)

const (
	DefaultPosterSize = "w500"
	// tamaño usado en el grid de géneros (posters chicos)
	ThumbPosterSize = "w200"

	posterWorkers = 6
)

// tamaños que usa el dashboard: grid de géneros, recomendaciones y original
var posterSizes = map[string]struct{}{
	ThumbPosterSize: {}, DefaultPosterSize: {}, "original": {},
}

var (
	ErrInvalidSize       = errors.New("tamaño de poster inválido")
	ErrPosterUnavailable = errors.New("poster no disponible")
)

// PosterSource es lo que el servicio necesita de TMDB.
type PosterSource interface {
	GetMovie(ctx context.Context, tmdbID int) (*tmdb.Movie, error)
	FetchImage(ctx context.Context, url string) (*tmdb.Image, error)
	ImageURL(size, posterPath string) string
}

type PosterService struct {
	src   PosterSource
	cache *cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewPosterService(src PosterSource, c *cache.Cache, ttl time.Duration) *PosterService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &PosterService{src: src, cache: c, ttl: ttl}
}

// lo que se guarda en cache; URL vacía = la película no tiene poster
type cachedPoster struct {
	URL string `json:"url"`
}

func posterCacheKey(tmdbID int, size string) string {
	return fmt.Sprintf("poster:tmdb:%d:%s", tmdbID, size)
}

// NormalizeSize aplica el default y valida contra los tamaños de TMDB.
func NormalizeSize(size string) (string, error) {
	if size == "" {
		return DefaultPosterSize, nil
	}
	if _, ok := posterSizes[size]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSize, size)
	}
	return size, nil
}

// Resolve devuelve la URL del poster de una película, cacheada por una hora.
// Las respuestas "sin poster" también se cachean; los errores de red no.
func (s *PosterService) Resolve(ctx context.Context, tmdbID int, size string) (models.Poster, error) {
	size, err := NormalizeSize(size)
	if err != nil {
		return models.Poster{}, err
	}
	p := models.Poster{TMDBID: tmdbID, Size: size}
	if tmdbID <= 0 {
		return p, nil
	}

	key := posterCacheKey(tmdbID, size)

	var cached cachedPoster
	ok, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("[posters] error leyendo cache")
	}
	if ok && err == nil {
		metrics.PosterCache.WithLabelValues("hit").Inc()
		p.URL, p.Available = cached.URL, cached.URL != ""
		return p, nil
	}
	metrics.PosterCache.WithLabelValues("miss").Inc()

	// la llamada compartida corre con su propio timeout; cada caller deja de
	// esperar cuando se cancela su contexto
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(shared, tmdb.DefaultTimeout)
		defer cancel()

		m, err := s.src.GetMovie(ctx, tmdbID)
		if err != nil && !errors.Is(err, tmdb.ErrNotFound) {
			return "", err
		}

		url := ""
		if m != nil {
			url = s.src.ImageURL(size, m.PosterPath)
		}
		if err := s.cache.SetJSON(ctx, key, cachedPoster{URL: url}, s.ttl); err != nil {
			logging.Warn().Err(err).Str("key", key).Msg("[posters] error guardando en cache")
		}
		return url, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return p, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return p, res.Err
	}

	p.URL = res.Val.(string)
	p.Available = p.URL != ""
	return p, nil
}

// Image resuelve el poster y descarga los bytes de la imagen.
func (s *PosterService) Image(ctx context.Context, tmdbID int, size string) (*tmdb.Image, error) {
	p, err := s.Resolve(ctx, tmdbID, size)
	if err != nil {
		return nil, err
	}
	if !p.Available {
		return nil, ErrPosterUnavailable
	}
	img, err := s.src.FetchImage(ctx, p.URL)
	if errors.Is(err, tmdb.ErrNotFound) {
		return nil, ErrPosterUnavailable
	}
	return img, err
}

// Cards arma las celdas del grid resolviendo los posters en paralelo.
// Si un poster falla la celda queda sin imagen; la lista nunca falla entera.
func (s *PosterService) Cards(ctx context.Context, movies []models.ClusteredMovie, size string) []models.MovieCard {
	cards := make([]models.MovieCard, len(movies))

	var g errgroup.Group
	g.SetLimit(posterWorkers)
	for i, m := range movies {
		g.Go(func() error {
			p, err := s.Resolve(ctx, m.TMDBID, size)
			if err != nil {
				logging.Warn().Err(err).Int("tmdbId", m.TMDBID).Msg("[posters] no se pudo resolver el poster")
			}
			cards[i] = models.NewMovieCard(m, p.URL)
			return nil
		})
	}
	_ = g.Wait()

	return cards
}

// PlainCards arma las celdas sin consultar TMDB.
func PlainCards(movies []models.ClusteredMovie) []models.MovieCard {
	cards := make([]models.MovieCard, len(movies))
	for i, m := range movies {
		cards[i] = models.NewMovieCard(m, "")
	}
	return cards
}
