package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cinecluster/internal/service"
)

type PosterHandler struct {
	svc *service.PosterService
}

func NewPosterHandler(s *service.PosterService) *PosterHandler { return &PosterHandler{svc: s} }

// @Summary URL del poster en TMDB (cacheada 1 hora)
// @Tags posters
// @Produce json
// @Param tmdbId path int true "tmdbId"
// @Param size query string false "w200|w500|original (default w500)"
// @Success 200 {object} models.Poster
// @Router /posters/{tmdbId} [get]
func (h *PosterHandler) GetPoster(w http.ResponseWriter, r *http.Request) {
	tmdbID, ok := tmdbIDParam(chi.URLParam(r, "tmdbId"))
	if !ok {
		http.Error(w, "tmdbId inválido", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Resolve(r.Context(), tmdbID, r.URL.Query().Get("size"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// @Summary Imagen del poster (proxy a TMDB)
// @Tags posters
// @Produce image/jpeg
// @Param tmdbId path int true "tmdbId"
// @Param size query string false "tamaño de poster (default w500)"
// @Success 200 {file} binary
// @Failure 404 {string} string "poster no disponible"
// @Router /posters/{tmdbId}/image [get]
func (h *PosterHandler) GetPosterImage(w http.ResponseWriter, r *http.Request) {
	tmdbID, ok := tmdbIDParam(chi.URLParam(r, "tmdbId"))
	if !ok {
		http.Error(w, "tmdbId inválido", http.StatusBadRequest)
		return
	}

	img, err := h.svc.Image(r.Context(), tmdbID, r.URL.Query().Get("size"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}
