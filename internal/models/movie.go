package models

import "strings"

// NoGenresToken es el valor que MovieLens usa para películas sin género.
const NoGenresToken = "(no genres listed)"

// ClusteredMovie es una fila del CSV de clustering (PCA o NMF).
type ClusteredMovie struct {
	MovieID int    `json:"movieId,omitempty" bson:"movieId,omitempty"`
	TMDBID  int    `json:"tmdbId" bson:"tmdbId"`
	Title   string `json:"title" bson:"title"`
	Genres  string `json:"genres" bson:"genres"` // "Action|Comedy"
	Cluster int    `json:"cluster" bson:"cluster"`
}

// GenreList separa la columna de géneros por '|'.
func (m ClusteredMovie) GenreList() []string {
	if m.Genres == "" {
		return nil
	}
	return strings.Split(m.Genres, "|")
}

// HasAnyGenre es true si alguno de los géneros de la película está en el set.
func (m ClusteredMovie) HasAnyGenre(set map[string]struct{}) bool {
	if len(set) == 0 {
		return false
	}
	for _, g := range m.GenreList() {
		if _, ok := set[g]; ok {
			return true
		}
	}
	return false
}

// MovieCard es lo que se muestra en cada celda del grid: la fila + su poster.
type MovieCard struct {
	ClusteredMovie
	PosterURL string `json:"posterUrl,omitempty"`
	HasPoster bool   `json:"hasPoster"`
}

func NewMovieCard(m ClusteredMovie, posterURL string) MovieCard {
	return MovieCard{ClusteredMovie: m, PosterURL: posterURL, HasPoster: posterURL != ""}
}

type DatasetStats struct {
	Algorithm     string  `json:"algorithm"`
	TotalMovies   int     `json:"totalMovies"`
	Clusters      int     `json:"clusters"`
	AvgPerCluster float64 `json:"avgPerCluster"`
	SkippedRows   int     `json:"skippedRows"`
	LoadedAt      string  `json:"loadedAt"`
}

// GenreFilterSummary resume un filtro por género (las métricas de la página de géneros).
type GenreFilterSummary struct {
	Matches      int    `json:"matches"`
	Clusters     int    `json:"clusters"`
	PrimaryGenre string `json:"primaryGenre,omitempty"`
}

type GenreFilterResult struct {
	Algorithm string             `json:"algorithm"`
	Genres    []string           `json:"genres"`
	Summary   GenreFilterSummary `json:"summary"`
	Movies    []ClusteredMovie   `json:"movies"`
}

type ShowcaseResult struct {
	Algorithm string             `json:"algorithm"`
	Genres    []string           `json:"genres"`
	Summary   GenreFilterSummary `json:"summary"`
	Items     []MovieCard        `json:"items"`
	Grid      [][]MovieCard      `json:"grid"`
}
