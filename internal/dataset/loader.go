package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"cinecluster/internal/models"
)

// columnas obligatorias del CSV de clustering
var requiredColumns = []string{"title", "genres", "tmdbid", "cluster"}

var ErrMissingColumn = errors.New("columna obligatoria ausente")

// Load lee un CSV de clustering desde disco.
func Load(algo Algorithm, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abriendo dataset %s: %w", algo, err)
	}
	defer f.Close()

	t, err := Parse(algo, bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("leyendo %s: %w", path, err)
	}
	t.Path = path
	return t, nil
}

// Parse lee el CSV desde un reader. Las columnas se buscan por nombre en el
// encabezado; las filas con tmdbId o cluster no numérico se descartan.
func Parse(algo Algorithm, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("leyendo encabezado: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	movieIDCol, hasMovieID := cols["movieid"]

	t := &Table{Algorithm: algo, LoadedAt: time.Now()}

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leyendo registro: %w", err)
		}

		tmdbID, ok := parseID(field(rec, cols["tmdbid"]))
		if !ok {
			t.Skipped++
			continue
		}
		cluster, ok := parseID(field(rec, cols["cluster"]))
		if !ok {
			t.Skipped++
			continue
		}

		m := models.ClusteredMovie{
			TMDBID:  tmdbID,
			Title:   strings.TrimSpace(field(rec, cols["title"])),
			Genres:  strings.TrimSpace(field(rec, cols["genres"])),
			Cluster: cluster,
		}
		if hasMovieID {
			m.MovieID, _ = parseID(field(rec, movieIDCol))
		}
		t.Rows = append(t.Rows, m)
	}

	return t, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// parseID acepta "862" y también "862.0" (pandas escribe así los enteros con NaN).
func parseID(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
