package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"cinecluster/internal/service"
)

// AdminHandler expone endpoints de mantenimiento.
type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// @Summary Recargar los CSV de clustering
// @Description Vuelve a leer ambos datasets; si alguno falla se mantienen los anteriores.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.DatasetStats
// @Failure 500 {string} string "error leyendo datasets"
// @Router /admin/datasets/reload [post]
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.ReloadDatasets()
	if err != nil {
		writeError(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().Str("by", SubjectFromContext(r.Context())).Msg("[admin] datasets recargados")
	writeJSON(w, http.StatusOK, stats)
}

// @Summary Historial de consultas de recomendación
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "límite (default 50, máx 500)"
// @Success 200 {array} models.HistoryEntry
// @Failure 503 {string} string "historial deshabilitado"
// @Router /admin/history [get]
func (h *AdminHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.History(r.Context(), int64(intQuery(r, "limit", 0)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Helper para montar rutas de admin
func MountAdminRoutes(r chi.Router, h *AdminHandler) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/datasets/reload", h.Reload)
		r.Get("/history", h.History)
	})
}
