package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, r, "*Handler.listPosts", err)
		return
	}

	posts, err := h.services.PostService.ListPosts(r.Context(), page)
	if err != nil {
		writeError(w, r, "*Handler.listPosts", err)
		return
	}

	utils.WriteJSON(w, posts, http.StatusOK)
}

func (h *Handler) listUserPosts(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, r, "*Handler.listUserPosts", err)
		return
	}

	posts, err := h.services.PostService.ListUserPosts(r.Context(), chi.URLParam(r, "username"), page)
	if err != nil {
		writeError(w, r, "*Handler.listUserPosts", err)
		return
	}

	utils.WriteJSON(w, posts, http.StatusOK)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, r, "*Handler.getPost", err)
		return
	}

	post, err := h.services.PostService.GetPost(r.Context(), postID)
	if err != nil {
		writeError(w, r, "*Handler.getPost", err)
		return
	}

	utils.WriteJSON(w, post, http.StatusOK)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, "*Handler.createPost", err)
		return
	}

	var req models.PostRequest
	if err = readJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.createPost", err)
		return
	}

	post, err := h.services.PostService.CreatePost(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, "*Handler.createPost", err)
		return
	}

	utils.WriteJSON(w, post, http.StatusCreated)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, "*Handler.updatePost", err)
		return
	}

	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, r, "*Handler.updatePost", err)
		return
	}

	var req models.PostRequest
	if err = readJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.updatePost", err)
		return
	}

	post, err := h.services.PostService.UpdatePost(r.Context(), userID, postID, req)
	if err != nil {
		writeError(w, r, "*Handler.updatePost", err)
		return
	}

	utils.WriteJSON(w, post, http.StatusOK)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, "*Handler.deletePost", err)
		return
	}

	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, r, "*Handler.deletePost", err)
		return
	}

	if err = h.services.PostService.DeletePost(r.Context(), userID, postID); err != nil {
		writeError(w, r, "*Handler.deletePost", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, "*Handler.toggleLike", err)
		return
	}

	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, r, "*Handler.toggleLike", err)
		return
	}

	state, err := h.services.LikeService.ToggleLike(r.Context(), userID, postID)
	if err != nil {
		writeError(w, r, "*Handler.toggleLike", err)
		return
	}

	utils.WriteJSON(w, state, http.StatusOK)
}
