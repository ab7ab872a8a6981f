package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapRelayResponse turns a non-2xx relay answer into one of the package's
// relay errors, keeping the status code and response body in the message.
func mapRelayResponse(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(resp.String())
	if body == "" {
		body = http.StatusText(status)
	}

	var target error
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		target = ErrBadRequest
	case status == http.StatusUnauthorized:
		target = ErrUnauthorized
	case status == http.StatusForbidden:
		target = ErrForbidden
	case status == http.StatusNotFound:
		target = ErrNotFound
	case status == http.StatusTooManyRequests:
		target = ErrRateLimited
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout:
		target = ErrBadGateway
	case status >= http.StatusInternalServerError:
		target = ErrInternalServerError
	default:
		return fmt.Errorf("relay answered %d: %s", status, body)
	}

	return fmt.Errorf("%w (%d): %s", target, status, body)
}
