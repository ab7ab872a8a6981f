package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client that sends every request relative to
// baseURL with the given per-request timeout. A zero timeout leaves resty's
// default in place.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://relay.example", 10*time.Second)
//	resp, err := client.R().SetBody(msg).Post("/send")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
