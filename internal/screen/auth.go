package screen

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/suteetoe/productdesk/internal/apiclient"
	"github.com/suteetoe/productdesk/pkg/logger"
)

// LoginSuccessFunc is called once the server accepted the credentials
type LoginSuccessFunc func(ctx context.Context, resp *apiclient.LoginResponse)

// LoginForm collects credentials and submits them
type LoginForm struct {
	api       AuthAPI
	notify    Notifier
	onSuccess LoginSuccessFunc
	log       *zap.Logger

	mu         sync.Mutex
	email      string
	password   string
	errMsg     string
	submitting bool
}

// NewLoginForm creates a login form; onSuccess may be nil
func NewLoginForm(api AuthAPI, notify Notifier, onSuccess LoginSuccessFunc, log *zap.Logger) *LoginForm {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoginForm{api: api, notify: notify, onSuccess: onSuccess, log: log}
}

// SetEmail updates the email field
func (f *LoginForm) SetEmail(v string) {
	f.mu.Lock()
	f.email = v
	f.mu.Unlock()
}

// SetPassword updates the password field
func (f *LoginForm) SetPassword(v string) {
	f.mu.Lock()
	f.password = v
	f.mu.Unlock()
}

// Email returns the email field
func (f *LoginForm) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// Error returns the message of the last failed attempt, cleared on success
func (f *LoginForm) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Submit sends the credentials. Success is reported through the callback.
func (f *LoginForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	creds := apiclient.Credentials{Email: strings.TrimSpace(f.email), Password: f.password}
	if creds.Email == "" || creds.Password == "" {
		f.errMsg = MsgLoginIncomplete
		f.mu.Unlock()
		f.notify.Alert(TitleError, MsgLoginIncomplete)
		return ErrIncomplete
	}
	f.submitting = true
	f.mu.Unlock()

	resp, err := f.api.Login(logger.WithContext(ctx, f.log), creds)

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.errMsg = serverMessageOr(err, MsgLoginFailed)
		msg := f.errMsg
		f.mu.Unlock()

		f.log.Warn("Login failed", zap.String("email", creds.Email), zap.Error(err))
		f.notify.Alert(TitleError, msg)
		return err
	}
	f.errMsg = ""
	f.password = ""
	f.mu.Unlock()

	f.log.Info("Login succeeded", zap.String("email", creds.Email))
	if f.onSuccess != nil {
		f.onSuccess(ctx, resp)
	}
	return nil
}

// RegisterForm collects credentials plus confirmation and creates an account
type RegisterForm struct {
	api    AuthAPI
	notify Notifier
	log    *zap.Logger

	mu         sync.Mutex
	email      string
	password   string
	confirm    string
	submitting bool
}

// NewRegisterForm creates a register form
func NewRegisterForm(api AuthAPI, notify Notifier, log *zap.Logger) *RegisterForm {
	if log == nil {
		log = zap.NewNop()
	}
	return &RegisterForm{api: api, notify: notify, log: log}
}

// SetEmail updates the email field
func (f *RegisterForm) SetEmail(v string) {
	f.mu.Lock()
	f.email = v
	f.mu.Unlock()
}

// SetPassword updates the password field
func (f *RegisterForm) SetPassword(v string) {
	f.mu.Lock()
	f.password = v
	f.mu.Unlock()
}

// SetConfirmPassword updates the confirmation field
func (f *RegisterForm) SetConfirmPassword(v string) {
	f.mu.Lock()
	f.confirm = v
	f.mu.Unlock()
}

// Submit validates the confirmation locally, then registers
func (f *RegisterForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	if f.password != f.confirm {
		f.mu.Unlock()
		f.notify.Alert(TitleError, MsgPasswordMismatch)
		return ErrPasswordMismatch
	}
	creds := apiclient.Credentials{Email: strings.TrimSpace(f.email), Password: f.password}
	f.submitting = true
	f.mu.Unlock()

	resp, err := f.api.Register(logger.WithContext(ctx, f.log), creds)

	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()

	if err != nil {
		f.log.Warn("Registration failed", zap.String("email", creds.Email), zap.Error(err))
		f.notify.Alert(TitleError, serverMessageOr(err, MsgRegisterFailed))
		return err
	}

	msg := resp.Message
	if msg == "" {
		msg = MsgRegistered
	}
	f.log.Info("Registration succeeded", zap.String("email", creds.Email))
	f.notify.Alert(TitleSuccess, msg)
	return nil
}
