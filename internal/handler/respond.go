package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/hlog"

	"cinecluster/internal/dataset"
	"cinecluster/internal/service"
	"cinecluster/internal/tmdb"
)

// Utilidad pequeña para respuestas JSON.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError traduce los errores de dominio a códigos HTTP.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var statusErr *tmdb.StatusError

	switch {
	case errors.Is(err, dataset.ErrUnknownAlgorithm),
		errors.Is(err, service.ErrInvalidSize):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrMovieNotFound),
		errors.Is(err, service.ErrPosterUnavailable):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, dataset.ErrNotLoaded),
		errors.Is(err, tmdb.ErrUnavailable),
		errors.Is(err, service.ErrHistoryDisabled):
		status = http.StatusServiceUnavailable
	case errors.As(err, &statusErr):
		status = http.StatusBadGateway
	}

	if status >= 500 {
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("request fallido")
	}
	http.Error(w, err.Error(), status)
}

// algoParam lee {algo} de la ruta (pca|nmf).
func algoParam(r *http.Request) (dataset.Algorithm, error) {
	return dataset.ParseAlgorithm(chi.URLParam(r, "algo"))
}

// tmdbIDParam lee un tmdbId positivo.
func tmdbIDParam(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// genresParam acepta ?genres=Action|Comedy, ?genres=Action,Comedy o ?genre= repetido.
func genresParam(r *http.Request) []string {
	q := r.URL.Query()
	raw := append([]string{}, q["genres"]...)
	raw = append(raw, q["genre"]...)

	var out []string
	seen := map[string]struct{}{}
	for _, v := range raw {
		for _, g := range strings.FieldsFunc(v, func(c rune) bool { return c == '|' || c == ',' }) {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}
			if _, dup := seen[g]; dup {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	return out
}

func intQuery(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}
