package service

import (
	"context"
	"errors"

	"cinecluster/internal/dataset"
	"cinecluster/internal/models"
	"cinecluster/internal/repository"
)

var ErrHistoryDisabled = errors.New("historial deshabilitado (MONGO_URI vacío)")

// HistoryReader lista las últimas consultas guardadas.
type HistoryReader interface {
	Recent(ctx context.Context, limit int64) ([]models.HistoryEntry, error)
}

// AdminService: recarga de datasets y consulta del historial.
type AdminService struct {
	movies  *repository.MovieRepository
	history HistoryReader
}

func NewAdminService(m *repository.MovieRepository, history HistoryReader) *AdminService {
	return &AdminService{movies: m, history: history}
}

// ReloadDatasets vuelve a leer los CSV y devuelve las estadísticas nuevas.
func (s *AdminService) ReloadDatasets() ([]models.DatasetStats, error) {
	if err := s.movies.Reload(); err != nil {
		return nil, err
	}

	out := make([]models.DatasetStats, 0, len(dataset.Algorithms))
	for _, algo := range dataset.Algorithms {
		st, err := s.movies.Stats(algo)
		if err != nil {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *AdminService) History(ctx context.Context, limit int64) ([]models.HistoryEntry, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.history.Recent(ctx, limit)
}
