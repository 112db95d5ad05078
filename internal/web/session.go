package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trothapp/troth/internal/platform/id"
	"github.com/trothapp/troth/internal/storage"
	"github.com/trothapp/troth/internal/web/platform/sessioncookie"
)

// defaultSessionTTL bounds how long a login stays valid without re-auth.
const defaultSessionTTL = 7 * 24 * time.Hour

// Viewer identifies the signed-in account for the current request.
type Viewer struct {
	UserID   string
	Username string
}

// SignedIn reports whether the viewer is an authenticated account.
func (v Viewer) SignedIn() bool {
	return strings.TrimSpace(v.UserID) != ""
}

// sessionClaims is the cookie token payload. The token only references the
// server-side session row, so revocation works by deleting the row.
type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// sessionManager issues and validates cookie-backed web sessions.
type sessionManager struct {
	secret   []byte
	sessions storage.SessionStore
	users    storage.UserStore
	ttl      time.Duration
	now      func() time.Time
	newID    func() (string, error)
}

func newSessionManager(secret []byte, sessions storage.SessionStore, users storage.UserStore) *sessionManager {
	return &sessionManager{
		secret:   secret,
		sessions: sessions,
		users:    users,
		ttl:      defaultSessionTTL,
		now:      time.Now,
		newID:    id.NewID,
	}
}

// create opens a session row for the user and returns the signed cookie token.
func (m *sessionManager) create(ctx context.Context, userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	sessionID, err := m.newID()
	if err != nil {
		return "", fmt.Errorf("new session id: %w", err)
	}

	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)
	if err := m.sessions.PutWebSession(ctx, storage.WebSession{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}); err != nil {
		return "", fmt.Errorf("put web session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		SessionID: sessionID,
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// parseToken extracts the session ID from a signed cookie token.
//
// Claim validation is manual so expiry checks share the injectable clock.
func (m *sessionManager) parseToken(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", false
	}
	sessionID := strings.TrimSpace(claims.SessionID)
	if sessionID == "" {
		return "", false
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(m.now().UTC()) {
		return "", false
	}
	return sessionID, true
}

// resolveViewer validates the request's session cookie and loads the account.
// Any failure resolves to the anonymous viewer.
func (m *sessionManager) resolveViewer(r *http.Request) Viewer {
	if m == nil || r == nil {
		return Viewer{}
	}
	token, ok := sessioncookie.Read(r)
	if !ok {
		return Viewer{}
	}
	sessionID, ok := m.parseToken(token)
	if !ok {
		return Viewer{}
	}

	ctx := r.Context()
	session, err := m.sessions.GetWebSession(ctx, sessionID)
	if err != nil {
		return Viewer{}
	}
	if !session.ExpiresAt.After(m.now().UTC()) {
		_ = m.sessions.DeleteWebSession(ctx, sessionID)
		return Viewer{}
	}

	account, err := m.users.GetUser(ctx, session.UserID)
	if err != nil {
		return Viewer{}
	}
	return Viewer{UserID: account.ID, Username: account.Username}
}

// destroy revokes the session row referenced by the request cookie.
func (m *sessionManager) destroy(ctx context.Context, r *http.Request) error {
	if m == nil || r == nil {
		return nil
	}
	token, ok := sessioncookie.Read(r)
	if !ok {
		return nil
	}
	sessionID, ok := m.parseToken(token)
	if !ok {
		return nil
	}
	return m.sessions.DeleteWebSession(ctx, sessionID)
}
