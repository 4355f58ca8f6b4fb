package dataset

import (
	"math"
	"sort"
	"time"

	"cinecluster/internal/models"
)

// Table es un dataset de clustering en memoria. Es de solo lectura una vez
// cargada; Reload crea tablas nuevas en vez de mutar las existentes.
type Table struct {
	Algorithm Algorithm
	Path      string
	Rows      []models.ClusteredMovie
	Skipped   int
	LoadedAt  time.Time
}

// FindByTMDBID devuelve la primera fila con ese tmdbId.
func (t *Table) FindByTMDBID(tmdbID int) (models.ClusteredMovie, bool) {
	for _, m := range t.Rows {
		if m.TMDBID == tmdbID {
			return m, true
		}
	}
	return models.ClusteredMovie{}, false
}

// FindByTitle devuelve la primera fila con exactamente ese título.
func (t *Table) FindByTitle(title string) (models.ClusteredMovie, bool) {
	for _, m := range t.Rows {
		if m.Title == title {
			return m, true
		}
	}
	return models.ClusteredMovie{}, false
}

// SameCluster devuelve las filas del cluster indicado, sin las que tienen
// excludeTMDBID, en el orden del archivo y truncadas a n (n <= 0 = sin límite).
func (t *Table) SameCluster(cluster, excludeTMDBID, n int) []models.ClusteredMovie {
	out := make([]models.ClusteredMovie, 0)
	for _, m := range t.Rows {
		if m.Cluster != cluster || m.TMDBID == excludeTMDBID {
			continue
		}
		out = append(out, m)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// FilterByGenres devuelve las filas que tienen al menos uno de los géneros.
func (t *Table) FilterByGenres(genres []string) []models.ClusteredMovie {
	set := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		if g != "" {
			set[g] = struct{}{}
		}
	}

	out := make([]models.ClusteredMovie, 0)
	if len(set) == 0 {
		return out
	}
	for _, m := range t.Rows {
		if m.HasAnyGenre(set) {
			out = append(out, m)
		}
	}
	return out
}

// Genres es el vocabulario de géneros ordenado, sin vacíos ni "(no genres listed)".
func (t *Table) Genres() []string {
	seen := make(map[string]struct{})
	for _, m := range t.Rows {
		for _, g := range m.GenreList() {
			if g == "" || g == models.NoGenresToken {
				continue
			}
			seen[g] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

func (t *Table) Stats() models.DatasetStats {
	clusters := DistinctClusters(t.Rows)

	avg := 0.0
	if clusters > 0 {
		avg = math.Round(float64(len(t.Rows))/float64(clusters)*10) / 10
	}

	return models.DatasetStats{
		Algorithm:     string(t.Algorithm),
		TotalMovies:   len(t.Rows),
		Clusters:      clusters,
		AvgPerCluster: avg,
		SkippedRows:   t.Skipped,
		LoadedAt:      t.LoadedAt.UTC().Format(time.RFC3339),
	}
}

// DistinctClusters cuenta cuántos clusters distintos aparecen en rows.
func DistinctClusters(rows []models.ClusteredMovie) int {
	seen := make(map[int]struct{})
	for _, m := range rows {
		seen[m.Cluster] = struct{}{}
	}
	return len(seen)
}
