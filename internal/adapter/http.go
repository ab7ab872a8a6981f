package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/utils"
)

// relaySendPath is the relay endpoint accepting one message per request.
const relaySendPath = "/send"

type httpMailer struct {
	client *utils.HTTPClient
	from   string
	token  string
	logger *logger.Logger
}

// NewHTTPMailer constructs a [Mailer] that POSTs each message as JSON to
// relayURL + "/send". When token is not empty it is sent as a bearer token.
func NewHTTPMailer(relayURL, token, from string, client *utils.HTTPClient, logger *logger.Logger) Mailer {
	if client == nil {
		client = utils.NewHTTPClient(relayURL, 0)
	}

	return &httpMailer{
		client: client,
		from:   from,
		token:  token,
		logger: logger,
	}
}

// relayMessage is the JSON body sent to the relay.
type relayMessage struct {
	From string `json:"from"`
	Message
}

func (h *httpMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(relayMessage{From: h.from, Message: msg})
	if h.token != "" {
		req.SetAuthToken(h.token)
	}

	resp, err := req.Post(relaySendPath)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*httpMailer.Send").Msg("relay request failed")
		return fmt.Errorf("relay request: %w", err)
	}

	return mapRelayResponse(resp)
}
