// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-blog/internal/app"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
	"github.com/go-chi/chi/v5"
)

// acceptedResponse is the body of endpoints that answer identically whether
// or not the email is registered.
type acceptedResponse struct {
	Message string `json:"message"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	user, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) resendVerification(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.resendVerification", err)
		return
	}

	if err := h.services.AuthService.ResendVerification(r.Context(), req.Email); err != nil {
		writeError(w, r, "*Handler.resendVerification", err)
		return
	}

	utils.WriteJSON(w, acceptedResponse{Message: app.MsgCheckInbox}, http.StatusAccepted)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.AuthService.VerifyEmail(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, r, "*Handler.verifyEmail", err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	session, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("%s %s", service.TokenTypeBearer, session.AccessToken.SignedString))
	utils.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	session, err := currentSession(r)
	if err != nil {
		writeError(w, r, "*Handler.logout", err)
		return
	}

	if err = h.services.AuthService.Logout(r.Context(), session); err != nil {
		writeError(w, r, "*Handler.logout", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.requestPasswordReset", err)
		return
	}

	if err := h.services.AuthService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, "*Handler.requestPasswordReset", err)
		return
	}

	utils.WriteJSON(w, acceptedResponse{Message: app.MsgCheckInbox}, http.StatusAccepted)
}

func (h *Handler) completePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.completePasswordReset", err)
		return
	}

	if err := h.services.AuthService.CompletePasswordReset(r.Context(), chi.URLParam(r, "token"), req.Password); err != nil {
		writeError(w, r, "*Handler.completePasswordReset", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, "*Handler.changePassword", err)
		return
	}

	var req models.ChangePasswordRequest
	if err = readJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.changePassword", err)
		return
	}

	if err = h.services.AuthService.ChangePassword(r.Context(), userID, req); err != nil {
		writeError(w, r, "*Handler.changePassword", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
