package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog/internal/adapter"
	"github.com/MKhiriev/go-blog/internal/mock"
	"github.com/MKhiriev/go-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLinkMailer_BuildsLinksFromBaseURL(t *testing.T) {
	env := newTestEnv(t)
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailer(ctrl)

	cfg := testConfig()
	cfg.App.BaseURL = "https://blog.example/"
	m := newLinkMailer(env.codec, mailer, cfg, nil)

	user := models.User{UserID: 3, Email: "bob@x.com"}

	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg adapter.Message) error {
		assert.Equal(t, "bob@x.com", msg.To)
		assert.Equal(t, "Password Reset", msg.Subject)
		link := linkPattern.FindString(msg.Body)
		require.NotEmpty(t, link)
		assert.Contains(t, link, "https://blog.example"+ResetPasswordPath)

		raw := link[len("https://blog.example"+ResetPasswordPath):]
		tok, err := env.codec.Verify(raw, models.PurposeReset, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(3), tok.UserID)
		return nil
	})

	require.NoError(t, m.sendReset(context.Background(), user))
}

func TestLinkMailer_DeliveryError(t *testing.T) {
	env := newTestEnv(t)
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailer(ctrl)
	m := newLinkMailer(env.codec, mailer, testConfig(), nil)

	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errBoom)

	err := m.sendVerification(context.Background(), models.User{UserID: 1, Email: "a@x.com"})
	assert.ErrorIs(t, err, errBoom)
}
