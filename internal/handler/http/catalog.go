package http

import (
	"net/http"

	"github.com/MKhiriev/study-marks/internal/utils"
)

func (h *Handler) searchCatalog(w http.ResponseWriter, r *http.Request) {
	items := h.services.CatalogService.Search(r.Context(), r.URL.Query().Get("q"))
	utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) listSubjects(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.CatalogService.Subjects(r.Context()), http.StatusOK)
}
