package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
)

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, "*Handler.listEvents", err)
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, r, "*Handler.listEvents", err)
		return
	}

	events, err := h.services.EventService.ListEvents(r.Context(), userID, limit)
	if err != nil {
		writeError(w, r, "*Handler.listEvents", err)
		return
	}
	if events == nil {
		events = []models.UserEvent{}
	}

	utils.WriteJSON(w, events, http.StatusOK)
}
