// internal/handler/movie_handler.go
package handler

import (
	"net/http"

	"cinecluster/internal/service"
)

type MovieHandler struct {
	svc *service.CatalogService
}

func NewMovieHandler(s *service.CatalogService) *MovieHandler { return &MovieHandler{svc: s} }

// @Summary Estadísticas del dataset
// @Tags datasets
// @Produce json
// @Param algo path string true "pca|nmf"
// @Success 200 {object} models.DatasetStats
// @Router /datasets/{algo}/stats [get]
func (h *MovieHandler) Stats(w http.ResponseWriter, r *http.Request) {
	algo, err := algoParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	st, err := h.svc.Stats(algo)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// @Summary Géneros disponibles (ordenados, sin "(no genres listed)")
// @Tags datasets
// @Produce json
// @Param algo path string true "pca|nmf"
// @Success 200 {array} string
// @Router /datasets/{algo}/genres [get]
func (h *MovieHandler) Genres(w http.ResponseWriter, r *http.Request) {
	algo, err := algoParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	genres, err := h.svc.Genres(algo)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

// @Summary Filtrar películas por género (alguno de los seleccionados)
// @Tags movies
// @Produce json
// @Param algo path string true "pca|nmf"
// @Param genres query string false "géneros separados por | o ,"
// @Param limit query int false "límite (0 = todas)"
// @Param offset query int false "offset"
// @Success 200 {object} models.GenreFilterResult
// @Router /datasets/{algo}/movies [get]
func (h *MovieHandler) Filter(w http.ResponseWriter, r *http.Request) {
	algo, err := algoParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.Filter(service.FilterRequest{
		Algo:   algo,
		Genres: genresParam(r),
		Limit:  intQuery(r, "limit", 0),
		Offset: intQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Grid de posters por género (hasta 10 al azar de las primeras 20)
// @Tags movies
// @Produce json
// @Param algo path string true "pca|nmf"
// @Param genres query string true "géneros separados por | o ,"
// @Param size query string false "tamaño de poster (default w200)"
// @Success 200 {object} models.ShowcaseResult
// @Router /datasets/{algo}/movies/showcase [get]
func (h *MovieHandler) Showcase(w http.ResponseWriter, r *http.Request) {
	algo, err := algoParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.Showcase(r.Context(), algo, genresParam(r), r.URL.Query().Get("size"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Buscar película por título exacto en el dataset
// @Tags movies
// @Produce json
// @Param algo path string true "pca|nmf"
// @Param title query string true "título"
// @Success 200 {object} models.ClusteredMovie
// @Failure 404 {string} string "no encontrada en el dataset seleccionado"
// @Router /datasets/{algo}/movies/by-title [get]
func (h *MovieHandler) ByTitle(w http.ResponseWriter, r *http.Request) {
	algo, err := algoParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	title := r.URL.Query().Get("title")
	if title == "" {
		http.Error(w, "title es requerido", http.StatusBadRequest)
		return
	}

	m, err := h.svc.MovieByTitle(algo, title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// @Summary Catálogo de títulos (PCA + NMF, sin repetir)
// @Tags movies
// @Produce json
// @Success 200 {array} string
// @Router /titles [get]
func (h *MovieHandler) Titles(w http.ResponseWriter, r *http.Request) {
	titles := h.svc.Titles()
	if titles == nil {
		titles = []string{}
	}
	writeJSON(w, http.StatusOK, titles)
}
