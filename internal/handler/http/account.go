package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/media"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, "*Handler.getAccount", err)
		return
	}

	user, err := h.services.AccountService.GetAccount(r.Context(), userID)
	if err != nil {
		writeError(w, r, "*Handler.getAccount", err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, "*Handler.updateAccount", err)
		return
	}

	var req models.AccountUpdateRequest
	if err = readJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.updateAccount", err)
		return
	}

	user, err := h.services.AccountService.UpdateAccount(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, "*Handler.updateAccount", err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// uploadAvatar accepts a multipart form with the image in the "picture"
// field.
func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, "*Handler.uploadAvatar", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarUpload)
	file, header, err := r.FormFile("picture")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, "*Handler.uploadAvatar", fmt.Errorf("%w: %w", ErrNoPicture, media.ErrImageTooLarge))
			return
		}
		writeError(w, r, "*Handler.uploadAvatar", fmt.Errorf("%w: %w", ErrNoPicture, err))
		return
	}
	defer file.Close()

	user, err := h.services.AccountService.UploadAvatar(r.Context(), userID, media.Upload{
		Reader:   file,
		FileName: header.Filename,
	})
	if err != nil {
		writeError(w, r, "*Handler.uploadAvatar", err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) getAvatar(w http.ResponseWriter, r *http.Request) {
	rc, contentType, err := h.services.AccountService.OpenAvatar(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, "*Handler.getAvatar", err)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		writeError(w, r, "*Handler.getAvatar", fmt.Errorf("error reading avatar: %w", err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(data); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getAvatar").Msg("error writing avatar")
	}
}
