// internal/repository/movie_repo.go
package repository

import (
	"cinecluster/internal/dataset"
	"cinecluster/internal/models"
)

// MovieRepository consulta los datasets de clustering cargados en memoria.
// Todas las búsquedas son scans lineales sobre la tabla del algoritmo elegido.
type MovieRepository struct {
	reg *dataset.Registry
}

func NewMovieRepository(reg *dataset.Registry) *MovieRepository {
	return &MovieRepository{reg: reg}
}

func (r *MovieRepository) GetByTMDBID(algo dataset.Algorithm, tmdbID int) (*models.ClusteredMovie, error) {
	t, err := r.reg.Get(algo)
	if err != nil {
		return nil, err
	}
	m, ok := t.FindByTMDBID(tmdbID)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MovieRepository) GetByTitle(algo dataset.Algorithm, title string) (*models.ClusteredMovie, error) {
	t, err := r.reg.Get(algo)
	if err != nil {
		return nil, err
	}
	m, ok := t.FindByTitle(title)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MovieRepository) SameCluster(algo dataset.Algorithm, cluster, excludeTMDBID, n int) ([]models.ClusteredMovie, error) {
	t, err := r.reg.Get(algo)
	if err != nil {
		return nil, err
	}
	return t.SameCluster(cluster, excludeTMDBID, n), nil
}

func (r *MovieRepository) FilterByGenres(algo dataset.Algorithm, genres []string) ([]models.ClusteredMovie, error) {
	t, err := r.reg.Get(algo)
	if err != nil {
		return nil, err
	}
	return t.FilterByGenres(genres), nil
}

func (r *MovieRepository) Genres(algo dataset.Algorithm) ([]string, error) {
	t, err := r.reg.Get(algo)
	if err != nil {
		return nil, err
	}
	return t.Genres(), nil
}

func (r *MovieRepository) Stats(algo dataset.Algorithm) (models.DatasetStats, error) {
	t, err := r.reg.Get(algo)
	if err != nil {
		return models.DatasetStats{}, err
	}
	return t.Stats(), nil
}

// Titles es el catálogo del buscador: títulos de PCA y NMF sin repetir.
func (r *MovieRepository) Titles() []string {
	return r.reg.Titles()
}

func (r *MovieRepository) Reload() error {
	return r.reg.Reload()
}
