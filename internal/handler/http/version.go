package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/study-marks/internal/utils"
)

// getServerVersion answers with the plain-text server version.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, version)
}

// getServerInfo answers with the version, start time and catalog size.
func (h *Handler) getServerInfo(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetServerInfo(r.Context()), http.StatusOK)
}
