package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
)

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, r, "*Handler.listComments", err)
		return
	}

	thread, err := h.services.CommentService.ListComments(r.Context(), postID)
	if err != nil {
		writeError(w, r, "*Handler.listComments", err)
		return
	}
	if thread == nil {
		thread = []*models.CommentNode{}
	}

	utils.WriteJSON(w, thread, http.StatusOK)
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, "*Handler.addComment", err)
		return
	}

	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, r, "*Handler.addComment", err)
		return
	}

	var req models.CommentRequest
	if err = readJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.addComment", err)
		return
	}

	comment, err := h.services.CommentService.AddComment(r.Context(), userID, postID, req)
	if err != nil {
		writeError(w, r, "*Handler.addComment", err)
		return
	}

	utils.WriteJSON(w, comment, http.StatusCreated)
}
