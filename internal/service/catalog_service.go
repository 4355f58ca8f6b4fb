package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"cinecluster/internal/dataset"
	"cinecluster/internal/grid"
	"cinecluster/internal/metrics"
	"cinecluster/internal/models"
	"cinecluster/internal/repository"
)

const (
	// del total filtrado se muestran como mucho 10 posters, sorteados entre los primeros 20
	ShowcaseSize = 10
	ShowcasePool = 20
)

var ErrMovieNotFound = errors.New("película no encontrada en el dataset seleccionado")

type CatalogService struct {
	movies  *repository.MovieRepository
	posters *PosterService
	shuffle func(n int, swap func(i, j int))
}

func NewCatalogService(m *repository.MovieRepository, posters *PosterService) *CatalogService {
	return &CatalogService{movies: m, posters: posters, shuffle: rand.Shuffle}
}

func (s *CatalogService) Genres(algo dataset.Algorithm) ([]string, error) {
	return s.movies.Genres(algo)
}

func (s *CatalogService) Stats(algo dataset.Algorithm) (models.DatasetStats, error) {
	return s.movies.Stats(algo)
}

func (s *CatalogService) Titles() []string {
	return s.movies.Titles()
}

// MovieByTitle busca el título en el dataset elegido. Un título que solo
// existe en el otro dataset devuelve ErrMovieNotFound.
func (s *CatalogService) MovieByTitle(algo dataset.Algorithm, title string) (*models.ClusteredMovie, error) {
	m, err := s.movies.GetByTitle(algo, title)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMovieNotFound
	}
	return m, nil
}

// FilterRequest: limit <= 0 devuelve todas las coincidencias desde offset.
type FilterRequest struct {
	Algo   dataset.Algorithm
	Genres []string
	Limit  int
	Offset int
}

// Filter devuelve las películas con al menos uno de los géneros pedidos.
// El resumen se calcula sobre todas las coincidencias, no sobre la página.
func (s *CatalogService) Filter(req FilterRequest) (*models.GenreFilterResult, error) {
	matches, err := s.movies.FilterByGenres(req.Algo, req.Genres)
	if err != nil {
		return nil, err
	}
	metrics.GenreFilters.WithLabelValues(string(req.Algo)).Inc()

	return &models.GenreFilterResult{
		Algorithm: string(req.Algo),
		Genres:    req.Genres,
		Summary:   summarize(matches, req.Genres),
		Movies:    page(matches, req.Limit, req.Offset),
	}, nil
}

// Showcase arma el grid de posters de la página de géneros: hasta 10
// películas al azar de las primeras 20 coincidencias, en 5 columnas.
func (s *CatalogService) Showcase(ctx context.Context, algo dataset.Algorithm, genres []string, size string) (*models.ShowcaseResult, error) {
	if size == "" {
		size = ThumbPosterSize
	}
	if _, err := NormalizeSize(size); err != nil {
		return nil, err
	}

	matches, err := s.movies.FilterByGenres(algo, genres)
	if err != nil {
		return nil, err
	}
	metrics.GenreFilters.WithLabelValues(string(algo)).Inc()

	picked := s.pick(matches)

	var cards []models.MovieCard
	if s.posters != nil {
		cards = s.posters.Cards(ctx, picked, size)
	} else {
		cards = PlainCards(picked)
	}

	return &models.ShowcaseResult{
		Algorithm: string(algo),
		Genres:    genres,
		Summary:   summarize(matches, genres),
		Items:     cards,
		Grid:      grid.Layout(cards, grid.ShowcaseColumns),
	}, nil
}

func (s *CatalogService) pick(matches []models.ClusteredMovie) []models.ClusteredMovie {
	if len(matches) <= ShowcaseSize {
		return matches
	}
	pool := make([]models.ClusteredMovie, min(ShowcasePool, len(matches)))
	copy(pool, matches)
	s.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:ShowcaseSize]
}

func summarize(matches []models.ClusteredMovie, genres []string) models.GenreFilterSummary {
	sum := models.GenreFilterSummary{
		Matches:  len(matches),
		Clusters: dataset.DistinctClusters(matches),
	}
	if len(genres) > 0 {
		sum.PrimaryGenre = genres[0]
	}
	return sum
}

func page(rows []models.ClusteredMovie, limit, offset int) []models.ClusteredMovie {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []models.ClusteredMovie{}
	}
	rows = rows[offset:]
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
