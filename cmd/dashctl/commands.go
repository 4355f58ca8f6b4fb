package main

import (
	"context"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"cinecluster/internal/dataset"
	"cinecluster/internal/service"
)

var (
	filterGenres []string
	filterLimit  int
	recN         int
	recTMDBID    int
)

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "Lista los géneros del dataset (ordenados)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		genres, err := a.catalog.Genres(a.algo)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd, genres)
		}
		for _, g := range genres {
			fmt.Fprintln(cmd.OutOrStdout(), g)
		}
		return nil
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Películas con alguno de los géneros indicados",
	Long: `Filtra el dataset por género (basta con que coincida uno) y muestra el resumen:
cantidad de películas, clusters distintos y género principal.

Con --posters muestra además el grid de hasta 10 películas al azar de las primeras 20.

Ejemplo:
  dashctl filter --genre Action --genre Comedy --algo nmf`,
	RunE: runFilter,
}

var recommendCmd = &cobra.Command{
	Use:   "recommend [título]",
	Short: "Películas del mismo cluster que la seleccionada",
	Long: `Busca la película por título exacto (o por --tmdb-id) y lista las otras
películas de su cluster en el orden del archivo, hasta --n (3..12).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecommend,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Estadísticas de ambos datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		var rows [][]string
		var out []any
		for _, algo := range dataset.Algorithms {
			st, err := a.catalog.Stats(algo)
			if err != nil {
				return err
			}
			out = append(out, st)
			rows = append(rows, []string{
				st.Algorithm,
				strconv.Itoa(st.TotalMovies),
				strconv.Itoa(st.Clusters),
				strconv.FormatFloat(st.AvgPerCluster, 'f', 1, 64),
				strconv.Itoa(st.SkippedRows),
			})
		}
		if asJSON {
			return printJSON(cmd, out)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"algoritmo", "películas", "clusters", "promedio", "omitidas"}, rows))
		return nil
	},
}

func init() {
	filterCmd.Flags().StringSliceVarP(&filterGenres, "genre", "g", nil, "género (repetible o separado por comas)")
	filterCmd.Flags().IntVar(&filterLimit, "limit", 20, "máximo de filas a listar (0 = todas)")
	_ = filterCmd.MarkFlagRequired("genre")

	recommendCmd.Flags().IntVarP(&recN, "n", "n", service.DefaultN, "cantidad de recomendaciones (3..12)")
	recommendCmd.Flags().IntVar(&recTMDBID, "tmdb-id", 0, "tmdbId de la película (en lugar del título)")
}

func runFilter(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if posters {
		res, err := a.catalog.Showcase(ctx, a.algo, filterGenres, "")
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd, res)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(res.Summary))
		fmt.Fprintln(cmd.OutOrStdout(), renderGrid(res.Grid))
		return nil
	}

	res, err := a.catalog.Filter(service.FilterRequest{Algo: a.algo, Genres: filterGenres, Limit: filterLimit})
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, res)
	}

	rows := make([][]string, len(res.Movies))
	for i, m := range res.Movies {
		rows[i] = []string{m.Title, m.Genres, strconv.Itoa(m.Cluster)}
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(res.Summary))
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"título", "géneros", "cluster"}, rows))
	return nil
}

func runRecommend(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	tmdbID := recTMDBID
	if tmdbID == 0 {
		if len(args) == 0 {
			return fmt.Errorf("indicá un título o --tmdb-id")
		}
		m, err := a.catalog.MovieByTitle(a.algo, args[0])
		if err != nil {
			return fmt.Errorf("%q: %w", args[0], err)
		}
		tmdbID = m.TMDBID
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	res, err := a.recommend.Recommend(ctx, service.RecRequest{
		Algo:        a.algo,
		TMDBID:      tmdbID,
		N:           recN,
		WithPosters: posters,
	})
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, res)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSelected(res.Selected, res.Cluster))
	fmt.Fprintln(cmd.OutOrStdout(), renderGrid(res.Grid))
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
