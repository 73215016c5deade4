// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/utils"
	"github.com/MKhiriev/study-marks/models"
)

func (h *Handler) listBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.services.BookmarkService.ListBookmarks(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "error listing bookmarks")
		return
	}

	utils.WriteJSON(w, bookmarks, http.StatusOK)
}

func (h *Handler) createBookmark(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var input models.NewBookmark
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Str("func", "*Handler.createBookmark").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	bookmark, err := h.services.BookmarkService.CreateBookmark(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err, "error creating bookmark")
		return
	}

	log.Info().Str("bookmark_id", bookmark.ID).Msg("bookmark created")
	utils.WriteJSON(w, bookmark, http.StatusCreated)
}

func (h *Handler) deleteBookmark(w http.ResponseWriter, r *http.Request) {
	bookmarkID := chi.URLParam(r, "bookmarkID")

	if err := h.services.BookmarkService.DeleteBookmark(r.Context(), bookmarkID); err != nil {
		writeServiceError(w, r, err, "error deleting bookmark")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) attachTag(w http.ResponseWriter, r *http.Request) {
	bookmarkID, tagID := chi.URLParam(r, "bookmarkID"), chi.URLParam(r, "tagID")

	if err := h.services.BookmarkService.AttachTag(r.Context(), bookmarkID, tagID); err != nil {
		writeServiceError(w, r, err, "error attaching tag")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) detachTag(w http.ResponseWriter, r *http.Request) {
	bookmarkID, tagID := chi.URLParam(r, "bookmarkID"), chi.URLParam(r, "tagID")

	if err := h.services.BookmarkService.DetachTag(r.Context(), bookmarkID, tagID); err != nil {
		writeServiceError(w, r, err, "error detaching tag")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
