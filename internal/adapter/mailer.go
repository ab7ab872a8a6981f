package adapter

import (
	"fmt"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/utils"
)

// NewMailer returns the [Mailer] selected by cfg.Driver.
func NewMailer(cfg config.Mail, logger *logger.Logger) (Mailer, error) {
	switch cfg.Driver {
	case config.MailDriverLog:
		return NewLogMailer(cfg.From, logger), nil
	case config.MailDriverSMTP:
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.From, logger), nil
	case config.MailDriverHTTP:
		client := utils.NewHTTPClient(cfg.RelayURL, cfg.Timeout)
		return NewHTTPMailer(cfg.RelayURL, cfg.RelayToken, cfg.From, client, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}
