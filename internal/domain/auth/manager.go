// Package auth issues, verifies and revokes login sessions for the API.
package auth

import (
	"context"
	"sync"
	"time"

	"brandkit-server-go/internal/domain/auth/store"
	"brandkit-server-go/internal/platform/errors"
	"brandkit-server-go/internal/platform/logging"
)

const (
	defaultCleanupInterval = 10 * time.Minute
	minCleanupInterval     = 30 * time.Second
)

// Options encapsulates the dependencies required to construct a Manager.
type Options struct {
	Store           store.Store
	Logger          *logging.Logger
	Secret          string
	SessionTTL      time.Duration
	CleanupInterval time.Duration
}

// Manager coordinates token signing and session storage.
type Manager struct {
	store      store.Store
	logger     *logging.Logger
	token      *AuthToken
	sessionTTL time.Duration

	cleanupInterval time.Duration
	cleanupStop     chan struct{}
	cleanupOnce     sync.Once
}

// NewManager wires a Manager using the supplied options.
func NewManager(opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, errors.New(errors.KindAuth, "manager.init", "auth manager requires a store")
	}
	if opts.Logger == nil {
		return nil, errors.New(errors.KindAuth, "manager.init", "auth manager requires a logger")
	}
	if opts.Secret == "" {
		return nil, errors.New(errors.KindAuth, "manager.init", "auth manager requires a signing secret")
	}

	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	interval := opts.CleanupInterval
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	if interval < minCleanupInterval {
		interval = minCleanupInterval
	}

	m := &Manager{
		store:           opts.Store,
		logger:          opts.Logger,
		token:           NewAuthToken(opts.Secret).WithTTL(ttl),
		sessionTTL:      ttl,
		cleanupInterval: interval,
		cleanupStop:     make(chan struct{}),
	}
	go m.cleanupLoop()
	return m, nil
}

func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := m.store.CleanupExpired(context.Background()); err != nil {
				m.logger.WarnTag("AUTH", "session cleanup failed: %v", err)
			}
		case <-m.cleanupStop:
			return
		}
	}
}

// IssueSession signs a token for the user and records the session.
func (m *Manager) IssueSession(ctx context.Context, userID uint, username, ip string) (string, error) {
	token, err := m.token.GenerateToken(userID, username)
	if err != nil {
		return "", err
	}

	now := time.Now()
	exp := now.Add(m.sessionTTL)
	sess := store.Session{
		Token:     token,
		UserID:    userID,
		Username:  username,
		IP:        ip,
		CreatedAt: now,
		ExpiresAt: &exp,
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return "", errors.Wrap(errors.KindAuth, "manager.issue", "failed to persist session", err)
	}

	m.logger.InfoTag("AUTH", "session issued for user %d (%s)", userID, username)
	return token, nil
}

// Authenticate verifies the signature and checks that the session is live.
func (m *Manager) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := m.token.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	sess, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, errors.Wrap(errors.KindAuth, "manager.authenticate", "session revoked or expired", err)
	}
	if sess.UserID != claims.UserID {
		return nil, errors.New(errors.KindAuth, "manager.authenticate", "session does not match token claims")
	}
	return claims, nil
}

// RevokeSession drops a session so its token stops working before expiry.
func (m *Manager) RevokeSession(ctx context.Context, token string) error {
	return m.store.Remove(ctx, token)
}

// Stats reports store-level session counters.
func (m *Manager) Stats(ctx context.Context) (map[string]any, error) {
	return m.store.Stats(ctx)
}

// Close stops the cleanup loop and releases the store.
func (m *Manager) Close(ctx context.Context) error {
	m.cleanupOnce.Do(func() {
		close(m.cleanupStop)
	})
	return m.store.Close(ctx)
}
