// Package session holds the client's in-memory belief about who is logged in.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/suteetoe/productdesk/pkg/jwtutil"
)

// TokenSink receives the bearer token for subsequent API calls
type TokenSink interface {
	SetToken(token string)
}

// Session gates the authenticated views. Nothing is persisted: a new Session
// always starts logged out in login mode.
type Session struct {
	mu            sync.Mutex
	authenticated bool
	loginMode     bool
	token         string
	claims        *jwtutil.UserClaims
	scope         context.Context
	cancel        context.CancelFunc

	sink TokenSink
	log  *zap.Logger
}

// New creates a logged-out session. sink may be nil.
func New(sink TokenSink, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{loginMode: true, sink: sink, log: log}
	s.scope, s.cancel = closedScope()
	return s
}

func closedScope() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx, cancel
}

// Login marks the session authenticated after a successful login response and
// returns the scope that lives until Logout. It reports false when the session
// was already authenticated, in which case nothing changes.
func (s *Session) Login(token string) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authenticated {
		return s.scope, false
	}

	s.authenticated = true
	s.token = token
	s.claims = nil
	if token != "" {
		claims, err := jwtutil.ParseUnverified(token)
		if err != nil {
			s.log.Warn("Login token is not a readable JWT", zap.Error(err))
		} else {
			s.claims = claims
		}
	}
	if s.sink != nil {
		s.sink.SetToken(token)
	}

	s.scope, s.cancel = context.WithCancel(context.Background())
	s.log.Info("Session authenticated", zap.String("email", s.emailLocked()))
	return s.scope, true
}

// Logout resets the session unconditionally and cancels everything bound to its scope
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel()
	if s.authenticated {
		s.log.Info("Session ended", zap.String("email", s.emailLocked()))
	}
	s.authenticated = false
	s.loginMode = true
	s.token = ""
	s.claims = nil
	if s.sink != nil {
		s.sink.SetToken("")
	}
}

// IsAuthenticated reports whether a login succeeded since the last logout
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// IsLoginMode reports whether the login form (rather than register) is shown
func (s *Session) IsLoginMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginMode
}

// ToggleMode switches between the login and register forms
func (s *Session) ToggleMode() {
	s.mu.Lock()
	s.loginMode = !s.loginMode
	s.mu.Unlock()
}

// Scope is cancelled on logout. While logged out it is already cancelled.
func (s *Session) Scope() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// Token returns the bearer token from the last login, if any
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Email returns the user named in the login token, or "" when unknown
func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emailLocked()
}

// ExpiresAt returns the token expiry; the zero time means unknown
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claims == nil || s.claims.ExpiresAt == nil {
		return time.Time{}
	}
	return s.claims.ExpiresAt.Time
}

func (s *Session) emailLocked() string {
	if s.claims == nil {
		return ""
	}
	return s.claims.Email
}
