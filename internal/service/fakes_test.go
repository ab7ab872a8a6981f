package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog/internal/adapter"
	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/crypto"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/token"
	"github.com/MKhiriev/go-blog/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testBaseURL = "http://blog.test"

// memoryStore keeps every repository in maps guarded by one mutex.
type memoryStore struct {
	mu sync.Mutex

	nextID int64
	now    func() time.Time

	users         map[int64]models.User
	history       map[int64][]string
	changedAt     map[int64]time.Time
	revoked       map[string]time.Time
	events        []models.UserEvent
	posts         map[int64]models.Post
	comments      map[int64]models.Comment
	likes         map[int64]map[int64]bool
	notifications map[int64]models.Notification
	avatars       map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		now:           time.Now,
		users:         map[int64]models.User{},
		history:       map[int64][]string{},
		changedAt:     map[int64]time.Time{},
		revoked:       map[string]time.Time{},
		posts:         map[int64]models.Post{},
		comments:      map[int64]models.Comment{},
		likes:         map[int64]map[int64]bool{},
		notifications: map[int64]models.Notification{},
		avatars:       map[string][]byte{},
	}
}

func (m *memoryStore) storages() *store.Storages {
	return &store.Storages{
		UserRepository:         m,
		SessionRepository:      m,
		EventRepository:        m,
		PostRepository:         m,
		CommentRepository:      m,
		LikeRepository:         m,
		NotificationRepository: m,
		AvatarStorage:          m,
	}
}

func (m *memoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

// users

func (m *memoryStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return models.User{}, store.ErrEmailTaken
		}
		if u.Username == user.Username {
			return models.User{}, store.ErrUsernameTaken
		}
	}

	user.UserID = m.id()
	user.CreatedAt = m.now()
	m.users[user.UserID] = user
	m.history[user.UserID] = []string{user.PasswordHash}
	m.changedAt[user.UserID] = user.CreatedAt
	return user, nil
}

func (m *memoryStore) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *memoryStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Email == email })
}

func (m *memoryStore) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Username == username })
}

func (m *memoryStore) findUser(match func(models.User) bool) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *memoryStore) UpdatePassword(ctx context.Context, userID int64, passwordHash string, retain int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	m.users[userID] = u
	m.changedAt[userID] = m.now()

	h := append(m.history[userID], passwordHash)
	if retain > 0 && len(h) > retain {
		h = h[len(h)-retain:]
	}
	m.history[userID] = h
	return nil
}

func (m *memoryStore) SetVerified(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	u.Verified = true
	m.users[userID] = u
	return nil
}

func (m *memoryStore) AppendPasswordHistory(ctx context.Context, userID int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history[userID] = append(m.history[userID], passwordHash)
	return nil
}

func (m *memoryStore) RecentPasswordHashes(ctx context.Context, userID int64, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.history[userID]
	out := make([]string, 0, limit)
	for i := len(h) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h[i])
	}
	return out, nil
}

func (m *memoryStore) PasswordChangedAt(ctx context.Context, userID int64) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	at, ok := m.changedAt[userID]
	if !ok {
		return time.Time{}, store.ErrUserNotFound
	}
	return at, nil
}

func (m *memoryStore) UpdateProfile(ctx context.Context, userID int64, username, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	for id, u := range m.users {
		if id == userID {
			continue
		}
		if u.Email == email {
			return models.User{}, store.ErrEmailTaken
		}
		if u.Username == username {
			return models.User{}, store.ErrUsernameTaken
		}
	}
	if user.Email != email {
		user.Verified = false
	}
	user.Username = username
	user.Email = email
	m.users[userID] = user
	return user, nil
}

func (m *memoryStore) SetImageFile(ctx context.Context, userID int64, imageFile string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	user.ImageFile = imageFile
	m.users[userID] = user
	return user, nil
}

// sessions

func (m *memoryStore) RevokeSession(ctx context.Context, tokenID string, userID int64, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.revoked[tokenID] = expiresAt
	return nil
}

func (m *memoryStore) IsSessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.revoked[tokenID]
	return ok, nil
}

func (m *memoryStore) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, exp := range m.revoked {
		if exp.Before(now) {
			delete(m.revoked, id)
			n++
		}
	}
	return n, nil
}

// events

func (m *memoryStore) SaveEvent(ctx context.Context, event models.UserEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	event.EventID = m.id()
	event.CreatedAt = time.Now()
	m.events = append(m.events, event)
	return nil
}

func (m *memoryStore) ListEvents(ctx context.Context, userID int64, limit int) ([]models.UserEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.UserEvent
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		if e := m.events[i]; e.UserID != nil && *e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryStore) eventKinds(userID int64) []models.EventKind {
	m.mu.Lock()
	defer m.mu.Unlock()

	var kinds []models.EventKind
	for _, e := range m.events {
		if e.UserID != nil && *e.UserID == userID {
			kinds = append(kinds, e.Kind)
		}
	}
	return kinds
}

// posts

func (m *memoryStore) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post.PostID = m.id()
	post.DatePosted = time.Now()
	post.UpdatedAt = post.DatePosted
	m.posts[post.PostID] = post
	return post, nil
}

func (m *memoryStore) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[postID]
	if !ok {
		return models.Post{}, store.ErrPostNotFound
	}
	return p, nil
}

func (m *memoryStore) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
	return m.listPosts(func(models.Post) bool { return true }, limit, offset)
}

func (m *memoryStore) ListPostsByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Post, int64, error) {
	return m.listPosts(func(p models.Post) bool { return p.UserID == userID }, limit, offset)
}

func (m *memoryStore) listPosts(match func(models.Post) bool, limit, offset int) ([]models.Post, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []models.Post
	for _, p := range m.posts {
		if match(p) {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PostID > all[j].PostID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], total, nil
}

func (m *memoryStore) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[post.PostID]; !ok {
		return models.Post{}, store.ErrPostNotFound
	}
	post.UpdatedAt = time.Now()
	m.posts[post.PostID] = post
	return post, nil
}

func (m *memoryStore) DeletePost(ctx context.Context, postID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[postID]; !ok {
		return store.ErrPostNotFound
	}
	delete(m.posts, postID)
	return nil
}

// comments

func (m *memoryStore) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	comment.CommentID = m.id()
	comment.CreatedAt = time.Now()
	m.comments[comment.CommentID] = comment
	return comment, nil
}

func (m *memoryStore) GetComment(ctx context.Context, commentID int64) (models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.comments[commentID]
	if !ok {
		return models.Comment{}, store.ErrCommentNotFound
	}
	return c, nil
}

func (m *memoryStore) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CommentID < out[j].CommentID })
	return out, nil
}

// likes

func (m *memoryStore) ToggleLike(ctx context.Context, postID, userID int64) (models.LikeState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.likes[postID] == nil {
		m.likes[postID] = map[int64]bool{}
	}
	liked := !m.likes[postID][userID]
	if liked {
		m.likes[postID][userID] = true
	} else {
		delete(m.likes[postID], userID)
	}
	return models.LikeState{Liked: liked, Likes: int64(len(m.likes[postID]))}, nil
}

func (m *memoryStore) CountLikes(ctx context.Context, postID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(len(m.likes[postID])), nil
}

// notifications

func (m *memoryStore) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n.NotificationID = m.id()
	n.CreatedAt = time.Now()
	m.notifications[n.NotificationID] = n
	return n, nil
}

func (m *memoryStore) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID && (!unreadOnly || !n.Read) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NotificationID > out[j].NotificationID })
	return out, nil
}

func (m *memoryStore) MarkRead(ctx context.Context, notificationID, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notifications[notificationID]
	if !ok || n.UserID != userID {
		return store.ErrNotificationNotFound
	}
	n.Read = true
	m.notifications[notificationID] = n
	return nil
}

func (m *memoryStore) CountUnread(ctx context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, nt := range m.notifications {
		if nt.UserID == userID && !nt.Read {
			n++
		}
	}
	return n, nil
}

// avatars

func (m *memoryStore) SaveAvatar(ctx context.Context, name, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.avatars[name] = append([]byte(nil), data...)
	return nil
}

func (m *memoryStore) OpenAvatar(ctx context.Context, name string) (io.ReadCloser, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.avatars[name]
	if !ok {
		return nil, "", store.ErrAvatarNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), "image/png", nil
}

func (m *memoryStore) DeleteAvatar(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.avatars[name]; !ok {
		return store.ErrAvatarNotFound
	}
	delete(m.avatars, name)
	return nil
}

// outbox records every message instead of delivering it.
type outbox struct {
	mu   sync.Mutex
	sent []adapter.Message
	err  error
}

func (o *outbox) Send(ctx context.Context, msg adapter.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, msg)
	return nil
}

func (o *outbox) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.sent)
}

var linkPattern = regexp.MustCompile(`https?://\S+`)

// lastToken returns the token of the newest message sent to "to" whose link
// contains path.
func (o *outbox) lastToken(t *testing.T, to, path string) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()

	for i := len(o.sent) - 1; i >= 0; i-- {
		msg := o.sent[i]
		if msg.To != to {
			continue
		}
		link := linkPattern.FindString(msg.Body)
		prefix := testBaseURL + path
		if !strings.HasPrefix(link, prefix) {
			continue
		}
		raw, err := url.PathUnescape(strings.TrimPrefix(link, prefix))
		require.NoError(t, err)
		return raw
	}

	t.Fatalf("no message with %s sent to %s", path, to)
	return ""
}

// testClock is a settable time source for the token codec.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{BaseURL: testBaseURL, Version: "test"},
		Auth: config.Auth{
			SecretKey:             "test-secret",
			TokenIssuer:           "go-blog-test",
			VerifySalt:            "email-verify",
			ResetSalt:             "password-reset",
			SessionSalt:           "session-access",
			VerifyTokenTTL:        30 * time.Minute,
			ResetTokenTTL:         30 * time.Minute,
			SessionTokenTTL:       time.Hour,
			PasswordHistoryDepth:  5,
			PasswordHistoryRetain: 10,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

type testEnv struct {
	services *Services
	store    *memoryStore
	outbox   *outbox
	clock    *testClock
	codec    *token.Codec
	hasher   crypto.PasswordHasher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testConfig()
	clock := &testClock{now: time.Now()}
	codec, err := token.NewCodec(cfg.Auth, token.WithClock(clock.Now))
	require.NoError(t, err)

	env := &testEnv{
		store:  newMemoryStore(),
		outbox: &outbox{},
		clock:  clock,
		codec:  codec,
		hasher: crypto.NewBcryptHasher(cfg.Auth.BcryptCost),
	}

	env.store.now = clock.Now

	env.services, err = newServices(env.store.storages(), codec, env.hasher, env.outbox, cfg, logger.Nop())
	require.NoError(t, err)

	return env
}

// registerVerified registers a user and follows the emailed verification link.
func (e *testEnv) registerVerified(t *testing.T, username, email, password string) models.User {
	t.Helper()
	ctx := context.Background()

	user, err := e.services.AuthService.Register(ctx, models.RegisterRequest{Username: username, Email: email, Password: password})
	require.NoError(t, err)

	user, err = e.services.AuthService.VerifyEmail(ctx, e.outbox.lastToken(t, user.Email, VerifyEmailPath))
	require.NoError(t, err)
	return user
}

var errBoom = errors.New("boom")
