package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog/internal/utils"
)

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, "*Handler.listNotifications", err)
		return
	}

	unreadOnly, err := queryBool(r, "unread")
	if err != nil {
		writeError(w, r, "*Handler.listNotifications", err)
		return
	}

	list, err := h.services.NotificationService.ListNotifications(r.Context(), userID, unreadOnly)
	if err != nil {
		writeError(w, r, "*Handler.listNotifications", err)
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, "*Handler.markNotificationRead", err)
		return
	}

	notificationID, err := pathID(r, "notificationID")
	if err != nil {
		writeError(w, r, "*Handler.markNotificationRead", err)
		return
	}

	if err = h.services.NotificationService.MarkRead(r.Context(), userID, notificationID); err != nil {
		writeError(w, r, "*Handler.markNotificationRead", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
