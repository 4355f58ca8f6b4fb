package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"

	"cinecluster/internal/dataset"
	"cinecluster/internal/models"
	"cinecluster/internal/service"
)

type RecommendHandler struct {
	svc     *service.RecommendService
	posters *service.PosterService
}

func NewRecommendHandler(s *service.RecommendService, posters *service.PosterService) *RecommendHandler {
	return &RecommendHandler{svc: s, posters: posters}
}

// @Summary Películas del mismo cluster que la seleccionada
// @Tags recommend
// @Produce json
// @Param algo path string true "pca|nmf"
// @Param tmdbId path int true "tmdbId de la película seleccionada"
// @Param n query int false "cantidad (3..12, default 6)"
// @Param posters query bool false "si true, resuelve los posters en TMDB"
// @Param size query string false "tamaño de poster (default w500)"
// @Success 200 {object} models.RecommendationResult
// @Failure 404 {string} string "película no encontrada"
// @Router /datasets/{algo}/movies/{tmdbId}/recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	algo, err := algoParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tmdbID, ok := tmdbIDParam(chi.URLParam(r, "tmdbId"))
	if !ok {
		http.Error(w, "tmdbId inválido", http.StatusBadRequest)
		return
	}

	res, err := h.svc.Recommend(r.Context(), service.RecRequest{
		Algo:        algo,
		TMDBID:      tmdbID,
		N:           intQuery(r, "n", 0),
		WithPosters: r.URL.Query().Get("posters") == "true",
		PosterSize:  r.URL.Query().Get("size"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type        string            `json:"type"`
	Msg         string            `json:"msg,omitempty"`
	Index       int               `json:"index,omitempty"`
	Movie       *models.MovieCard `json:"movie,omitempty"`
	Cluster     *int              `json:"cluster,omitempty"`
	Count       int               `json:"count,omitempty"`
	Error       string            `json:"error,omitempty"`
	GeneratedAt *time.Time        `json:"generatedAt,omitempty"`
}

// @Summary Recomendaciones en streaming (WebSocket), un mensaje por película con su poster
// @Tags recommend
// @Param algo query string false "pca|nmf"
// @Param tmdbId query int true "tmdbId de la película seleccionada"
// @Param n query int false "cantidad (3..12, default 6)"
// @Param size query string false "tamaño de poster (default w500)"
// @Success 101
// @Router /ws/recommendations [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	algo, err := dataset.ParseAlgorithm(r.URL.Query().Get("algo"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	tmdbID, ok := tmdbIDParam(r.URL.Query().Get("tmdbId"))
	if !ok {
		http.Error(w, "tmdbId inválido", http.StatusBadRequest)
		return
	}
	size, err := service.NormalizeSize(r.URL.Query().Get("size"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	n := service.ClampN(intQuery(r, "n", 0))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió con el error HTTP
		return
	}
	defer conn.Close()

	log := hlog.FromRequest(r)
	ctx := r.Context()
	send := func(m wsMessage) bool {
		if err := conn.WriteJSON(m); err != nil {
			log.Debug().Err(err).Msg("[ws] cliente desconectado")
			return false
		}
		return true
	}

	if !send(wsMessage{Type: "start", Msg: "Conexión WS abierta, buscando recomendaciones…"}) {
		return
	}

	selected, err := h.svc.Selected(algo, tmdbID)
	if err != nil {
		send(wsMessage{Type: "error", Error: err.Error()})
		return
	}
	recs, err := h.svc.Neighbors(algo, *selected, n)
	if err != nil {
		send(wsMessage{Type: "error", Error: err.Error()})
		return
	}

	card := h.card(r, *selected, size)
	cluster := selected.Cluster
	if !send(wsMessage{Type: "selected", Movie: &card, Cluster: &cluster}) {
		return
	}

	// un mensaje por recomendación, a medida que se resuelve su poster
	for i, m := range recs {
		if ctx.Err() != nil {
			return
		}
		c := h.card(r, m, size)
		if !send(wsMessage{Type: "recommendation", Index: i, Movie: &c}) {
			return
		}
	}

	h.svc.Record(ctx, algo, selected, recs, n)

	now := time.Now()
	send(wsMessage{Type: "done", Count: len(recs), Cluster: &cluster, GeneratedAt: &now})
}

func (h *RecommendHandler) card(r *http.Request, m models.ClusteredMovie, size string) models.MovieCard {
	if h.posters == nil {
		return models.NewMovieCard(m, "")
	}
	p, err := h.posters.Resolve(r.Context(), m.TMDBID, size)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Int("tmdbId", m.TMDBID).Msg("[ws] poster no disponible")
	}
	return models.NewMovieCard(m, p.URL)
}
