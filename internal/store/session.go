package store

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dotcomico/dotmarket-client/internal/api"
	"github.com/dotcomico/dotmarket-client/internal/apperrors"
	"github.com/dotcomico/dotmarket-client/internal/model"
	"github.com/dotcomico/dotmarket-client/internal/storage"
	"github.com/dotcomico/dotmarket-client/pkg/logger"
)

// SessionStorageKey is the fixed key the persisted session lives under.
const SessionStorageKey = "auth-storage"

// Landing is where a freshly authenticated user should be taken.
type Landing string

const (
	LandingStorefront Landing = "storefront"
	LandingBackOffice Landing = "backoffice"
)

// AuthAPI is the slice of the API client the session needs.
type AuthAPI interface {
	Login(ctx context.Context, creds api.LoginCredentials) (*api.AuthResponse, error)
	Register(ctx context.Context, input api.RegisterInput) (*api.AuthResponse, error)
	Me(ctx context.Context) (*model.User, error)
}

// AuthResult is the outcome of a login or registration attempt.
type AuthResult struct {
	Success bool
	User    *model.User
	Landing Landing
	Error   string
}

// Session holds the authenticated user and bearer token, persisted so a
// restart resumes the same session. It implements api.TokenSource and
// is the target of the client's 401 hook: any unauthorized response
// clears the token and fires the forced-logout handler once.
type Session struct {
	api    AuthAPI
	mirror *storage.Store

	mu          sync.Mutex
	session     *model.AuthSession
	onForcedOut func()
}

// NewSession restores any persisted session from the mirror.
func NewSession(authAPI AuthAPI, mirror *storage.Store) *Session {
	s := &Session{api: authAPI, mirror: mirror}

	if mirror != nil {
		var saved model.AuthSession
		found, err := mirror.Get(SessionStorageKey, &saved)
		if err != nil {
			logger.Warn("Discarding unreadable session mirror", map[string]interface{}{
				"error": err.Error(),
			})
		} else if found && saved.Token != "" {
			s.session = &saved
		}
	}
	return s
}

// Bind wires this session into the API client: it becomes the token
// source and the 401 teardown target.
func (s *Session) Bind(client *api.Client) {
	client.SetTokenSource(s)
	client.SetUnauthorizedHook(s.forceLogout)
}

// SetForcedLogoutHandler registers the view-layer reaction to a 401
// (the SPA's redirect to the login route).
func (s *Session) SetForcedLogoutHandler(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onForcedOut = fn
}

// Token returns the current bearer token, or "".
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// User returns the authenticated user, or nil.
func (s *Session) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	user := s.session.User
	return &user
}

// IsAuthenticated reports whether a token is present and not expired.
func (s *Session) IsAuthenticated() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	return !tokenExpired(token)
}

// tokenExpired checks the JWT exp claim without verifying the
// signature. Verification is the server's job; the client only needs
// to know whether presenting the token is pointless.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Opaque tokens are passed through; the server will answer 401.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// IsAdmin reports whether the authenticated user is an admin.
func (s *Session) IsAdmin() bool {
	return s.HasRole(model.RoleAdmin)
}

// IsManager reports whether the authenticated user is a manager.
func (s *Session) IsManager() bool {
	return s.HasRole(model.RoleManager)
}

// HasRole reports whether the authenticated user holds any of roles.
func (s *Session) HasRole(roles ...model.Role) bool {
	if !s.IsAuthenticated() {
		return false
	}
	user := s.User()
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}

// Login exchanges credentials for a session, persists it, and reports
// the role-appropriate landing area.
func (s *Session) Login(ctx context.Context, creds api.LoginCredentials) AuthResult {
	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		msg := apperrors.Message(err, "Login failed. Please try again.")
		apperrors.Log(err, "session.login")
		return AuthResult{Success: false, Error: msg}
	}
	return s.establish(resp)
}

// Register creates an account and auto-logs in, as the storefront does.
func (s *Session) Register(ctx context.Context, input api.RegisterInput) AuthResult {
	resp, err := s.api.Register(ctx, input)
	if err != nil {
		msg := apperrors.Message(err, "Registration failed. Please try again.")
		apperrors.Log(err, "session.register")
		return AuthResult{Success: false, Error: msg}
	}
	return s.establish(resp)
}

func (s *Session) establish(resp *api.AuthResponse) AuthResult {
	sess := &model.AuthSession{Token: resp.Token, User: resp.User}

	s.mu.Lock()
	s.session = sess
	s.persistLocked()
	s.mu.Unlock()

	landing := LandingStorefront
	if resp.User.IsStaff() {
		landing = LandingBackOffice
	}

	logger.Info("Session established", map[string]interface{}{
		"user_id": resp.User.ID,
		"role":    string(resp.User.Role),
	})

	user := resp.User
	return AuthResult{Success: true, User: &user, Landing: landing}
}

// RefreshUser re-fetches the profile behind the token and updates the
// persisted copy.
func (s *Session) RefreshUser(ctx context.Context) (*model.User, error) {
	user, err := s.api.Me(ctx)
	if err != nil {
		apperrors.Log(err, "session.refreshUser")
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		s.session.User = *user
		s.persistLocked()
	}
	return user, nil
}

// Logout drops the session and its persisted mirror. Cross-container
// teardown (cart, orders) belongs to the hook layer.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	logger.Info("Session cleared")
}

// forceLogout is the 401 hook: clear the stored token, then notify the
// view layer once per occurrence.
func (s *Session) forceLogout() {
	s.mu.Lock()
	had := s.session != nil
	s.clearLocked()
	handler := s.onForcedOut
	s.mu.Unlock()

	if had {
		logger.Warn("Session invalidated by server")
	}
	if handler != nil {
		handler()
	}
}

// clearLocked drops state and the mirror. Callers hold s.mu.
func (s *Session) clearLocked() {
	s.session = nil
	if s.mirror != nil {
		if err := s.mirror.Remove(SessionStorageKey); err != nil {
			logger.Warn("Failed to erase session mirror", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// persistLocked rewrites the mirror. Callers hold s.mu.
func (s *Session) persistLocked() {
	if s.mirror == nil || s.session == nil {
		return
	}
	if err := s.mirror.Set(SessionStorageKey, s.session); err != nil {
		logger.Error("Failed to persist session", err)
	}
}
