// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
)

// SessionJanitor deletes revoked-session rows once the token they deny has
// expired on its own. Such rows can no longer match a valid token.
type SessionJanitor struct {
	sessions store.SessionRepository
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewSessionJanitor(sessions store.SessionRepository, interval time.Duration, logger *logger.Logger) *SessionJanitor {
	return &SessionJanitor{
		sessions: sessions,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run purges once immediately and then every interval until ctx is done.
func (j *SessionJanitor) Run(ctx context.Context) {
	j.logger.Info().Dur("interval", j.interval).Msg("session janitor started")
	defer j.logger.Info().Msg("session janitor stopped")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.purge(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.purge(ctx)
		}
	}
}

func (j *SessionJanitor) purge(ctx context.Context) {
	purged, err := j.sessions.PurgeExpiredSessions(ctx, j.now())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		j.logger.Err(err).Str("func", "*SessionJanitor.purge").Msg("error purging expired sessions")
		return
	}

	if purged > 0 {
		j.logger.Info().Int64("purged", purged).Msg("expired revoked sessions purged")
	}
}
