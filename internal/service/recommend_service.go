package service

import (
	"context"

	"cinecluster/internal/dataset"
	"cinecluster/internal/grid"
	"cinecluster/internal/logging"
	"cinecluster/internal/metrics"
	"cinecluster/internal/models"
	"cinecluster/internal/repository"
)

const (
	DefaultN = 6
	MinN     = 3
	MaxN     = 12
)

// HistoryStore guarda las consultas; puede ser nil (sin Mongo).
type HistoryStore interface {
	Insert(ctx context.Context, e *models.HistoryEntry) error
}

type RecommendService struct {
	movies  *repository.MovieRepository
	posters *PosterService
	history HistoryStore
}

func NewRecommendService(m *repository.MovieRepository, posters *PosterService, history HistoryStore) *RecommendService {
	return &RecommendService{movies: m, posters: posters, history: history}
}

type RecRequest struct {
	Algo        dataset.Algorithm
	TMDBID      int
	N           int
	WithPosters bool
	PosterSize  string
}

// ClampN aplica el default (6) y los límites del selector (3..12).
func ClampN(n int) int {
	switch {
	case n <= 0:
		return DefaultN
	case n < MinN:
		return MinN
	case n > MaxN:
		return MaxN
	}
	return n
}

// Selected busca la película elegida por tmdbId en el dataset.
func (s *RecommendService) Selected(algo dataset.Algorithm, tmdbID int) (*models.ClusteredMovie, error) {
	m, err := s.movies.GetByTMDBID(algo, tmdbID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMovieNotFound
	}
	return m, nil
}

// Neighbors devuelve las otras películas del mismo cluster, en orden del
// archivo y truncadas a n.
func (s *RecommendService) Neighbors(algo dataset.Algorithm, selected models.ClusteredMovie, n int) ([]models.ClusteredMovie, error) {
	return s.movies.SameCluster(algo, selected.Cluster, selected.TMDBID, ClampN(n))
}

// Recommend: película seleccionada + vecinos de cluster, opcionalmente con posters.
func (s *RecommendService) Recommend(ctx context.Context, req RecRequest) (*models.RecommendationResult, error) {
	req.N = ClampN(req.N)

	selected, err := s.Selected(req.Algo, req.TMDBID)
	if err != nil {
		metrics.Recommendations.WithLabelValues(string(req.Algo), "not_found").Inc()
		return nil, err
	}

	recs, err := s.Neighbors(req.Algo, *selected, req.N)
	if err != nil {
		metrics.Recommendations.WithLabelValues(string(req.Algo), "error").Inc()
		return nil, err
	}

	res := &models.RecommendationResult{
		Algorithm: string(req.Algo),
		Cluster:   selected.Cluster,
	}

	if req.WithPosters && s.posters != nil {
		size := req.PosterSize
		if size == "" {
			size = DefaultPosterSize
		}
		if _, err := NormalizeSize(size); err != nil {
			return nil, err
		}
		cards := s.posters.Cards(ctx, append([]models.ClusteredMovie{*selected}, recs...), size)
		res.Selected, res.Items = cards[0], cards[1:]
	} else {
		res.Selected = models.NewMovieCard(*selected, "")
		res.Items = PlainCards(recs)
	}
	res.Grid = grid.Layout(res.Items, grid.RecommendationColumns)

	s.Record(ctx, req.Algo, selected, recs, req.N)
	return res, nil
}

// Record cierra una consulta exitosa: métrica + historial. Lo usan el endpoint
// HTTP y el stream WS. Un error de Mongo no rompe la respuesta.
func (s *RecommendService) Record(ctx context.Context, algo dataset.Algorithm, selected *models.ClusteredMovie, recs []models.ClusteredMovie, n int) {
	metrics.Recommendations.WithLabelValues(string(algo), "ok").Inc()
	if s.history == nil {
		return
	}

	items := make([]models.HistoryItem, len(recs))
	for i, m := range recs {
		items[i] = models.HistoryItem{TMDBID: m.TMDBID, Title: m.Title}
	}

	entry := &models.HistoryEntry{
		Algorithm: string(algo),
		TMDBID:    selected.TMDBID,
		Title:     selected.Title,
		Cluster:   selected.Cluster,
		N:         ClampN(n),
		Items:     items,
	}
	if err := s.history.Insert(ctx, entry); err != nil {
		logging.Warn().Err(err).Int("tmdbId", selected.TMDBID).Msg("[recommend] error guardando historial en Mongo")
	}
}
