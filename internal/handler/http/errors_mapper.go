package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-blog/internal/app"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
)

// errorStatusMap lists the errors with a dedicated status. Errors are
// matched with errors.Is, so wrapped variants such as service.ErrEmailTaken
// inherit the status of their base error.
var errorStatusMap = map[error]int{
	service.ErrConflict:            http.StatusConflict,
	service.ErrAuthFailed:          http.StatusUnauthorized,
	service.ErrNotVerified:         http.StatusForbidden,
	service.ErrTokenExpired:        http.StatusGone,
	service.ErrTokenInvalid:        http.StatusBadRequest,
	service.ErrPasswordReused:      http.StatusUnprocessableEntity,
	service.ErrNotFound:            http.StatusNotFound,
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrForbidden:           http.StatusForbidden,

	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrNoSession:                  http.StatusUnauthorized,
	ErrInvalidJSON:                http.StatusBadRequest,
	ErrInvalidPathParam:           http.StatusBadRequest,
	ErrNoPicture:                  http.StatusBadRequest,

	context.DeadlineExceeded: http.StatusGatewayTimeout,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with its status. Internal errors are not
// described to the client.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = app.MsgInternalServerError
		logger.FromRequest(r).Err(err).Str("func", funcName).Msg("request failed")
	} else {
		logger.FromRequest(r).Info().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}

// writeAuthError answers 401 for failed authentication and adds the
// WWW-Authenticate challenge. Expired, revoked and invalid session tokens are
// reported alike.
func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Info().Err(err).Str("func", "*Handler.auth").Msg("request is not authenticated")

	status := http.StatusUnauthorized
	message := app.MsgAuthenticationRequired
	if statusFromError(err) == http.StatusInternalServerError {
		status = http.StatusInternalServerError
		message = app.MsgInternalServerError
	} else {
		w.Header().Set("WWW-Authenticate", `Bearer realm="go-blog"`)
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
