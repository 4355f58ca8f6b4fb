package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinecluster/internal/models"
)

const pcaCSV = `movieId,title,genres,tmdbId,cluster
1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy,862,0
2,Jumanji (1995),Adventure|Children|Fantasy,8844,0
3,Grumpier Old Men (1995),Comedy|Romance,15602,1
4,Heat (1995),Action|Crime|Thriller,949,0
`

const nmfCSV = `title,genres,tmdbId,cluster
Heat (1995),Action|Crime|Thriller,949,5
Only In NMF,Drama,4242,5
`

func writeDatasets(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	pca := filepath.Join(dir, "pca.csv")
	nmf := filepath.Join(dir, "nmf.csv")
	require.NoError(t, os.WriteFile(pca, []byte(pcaCSV), 0o644))
	require.NoError(t, os.WriteFile(nmf, []byte(nmfCSV), 0o644))
	return pca, nmf
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	pca, nmf := writeDatasets(t)

	// valores por defecto de los flags globales entre ejecuciones
	algoFlag, posters, asJSON, recTMDBID = "pca", false, false, 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--pca", pca, "--nmf", nmf}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenresCommand(t *testing.T) {
	out, err := run(t, "genres")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"Action", "Adventure", "Animation", "Children", "Comedy", "Crime", "Fantasy", "Romance", "Thriller"}, lines)
}

func TestRecommendCommand(t *testing.T) {
	t.Run("by title as JSON", func(t *testing.T) {
		out, err := run(t, "recommend", "Toy Story (1995)", "--json", "-n", "3")
		require.NoError(t, err)

		var res models.RecommendationResult
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, 862, res.Selected.TMDBID)
		require.Len(t, res.Items, 2)
		assert.Equal(t, 8844, res.Items[0].TMDBID)
		assert.Equal(t, 949, res.Items[1].TMDBID)
	})

	t.Run("grid output", func(t *testing.T) {
		out, err := run(t, "recommend", "--tmdb-id", "949", "--algo", "nmf")
		require.NoError(t, err)
		assert.Contains(t, out, "Only In NMF")
		assert.Contains(t, out, "Poster no disponible")
	})

	t.Run("unknown title", func(t *testing.T) {
		_, err := run(t, "recommend", "Nope")
		assert.Error(t, err)
	})
}

func TestFilterCommand(t *testing.T) {
	out, err := run(t, "filter", "--genre", "Comedy", "--json")
	require.NoError(t, err)

	var res models.GenreFilterResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.Summary.Matches)
	assert.Equal(t, 2, res.Summary.Clusters)
	assert.Equal(t, "Comedy", res.Summary.PrimaryGenre)
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "pca")
	assert.Contains(t, out, "nmf")
}

func TestRenderGrid(t *testing.T) {
	cards := []models.MovieCard{
		models.NewMovieCard(models.ClusteredMovie{Title: "A", Cluster: 1}, "https://img/a.jpg"),
		models.NewMovieCard(models.ClusteredMovie{Title: "B", Cluster: 1}, ""),
	}
	out := renderGrid([][]models.MovieCard{cards})
	assert.Contains(t, out, "https://img/a.jpg")
	assert.Contains(t, out, "Poster no disponible")

	assert.Contains(t, renderGrid(nil), "sin resultados")
}
