package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/utils"
	"github.com/MKhiriev/study-marks/models"
)

// listTags returns all tags of the user. With ?name= it instead returns the
// single tag with exactly that name, or 404.
func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("name") {
		tag, err := h.services.TagService.FindTagByName(r.Context(), r.URL.Query().Get("name"))
		if err != nil {
			writeServiceError(w, r, err, "error finding tag by name")
			return
		}
		utils.WriteJSON(w, tag, http.StatusOK)
		return
	}

	tags, err := h.services.TagService.ListTags(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "error listing tags")
		return
	}

	utils.WriteJSON(w, tags, http.StatusOK)
}

func (h *Handler) createTag(w http.ResponseWriter, r *http.Request) {
	var input models.NewTag
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	tag, err := h.services.TagService.CreateTag(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err, "error creating tag")
		return
	}

	utils.WriteJSON(w, tag, http.StatusCreated)
}

func (h *Handler) deleteTag(w http.ResponseWriter, r *http.Request) {
	if err := h.services.TagService.DeleteTag(r.Context(), chi.URLParam(r, "tagID")); err != nil {
		writeServiceError(w, r, err, "error deleting tag")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
