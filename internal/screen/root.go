package screen

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/suteetoe/productdesk/internal/apiclient"
	"github.com/suteetoe/productdesk/internal/session"
)

// View identifies which screen the root shows
type View int

const (
	ViewLogin View = iota
	ViewRegister
	ViewProducts
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewProducts:
		return "products"
	default:
		return "unknown"
	}
}

// Options configures the App
type Options struct {
	Placeholder string
	Logger      *zap.Logger
	Now         func() time.Time
}

// App is the root composition: it owns the session and switches between the
// auth forms and the product screen.
type App struct {
	session  *session.Session
	products ProductAPI
	notify   Notifier
	opts     Options
	log      *zap.Logger

	login    *LoginForm
	register *RegisterForm

	mu     sync.Mutex
	screen *ProductScreen
}

// NewApp wires the forms to the session
func NewApp(sess *session.Session, auth AuthAPI, products ProductAPI, notify Notifier, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	a := &App{
		session:  sess,
		products: products,
		notify:   notify,
		opts:     opts,
		log:      opts.Logger,
	}
	a.login = NewLoginForm(auth, notify, a.onLoginSuccess, opts.Logger.Named("login"))
	a.register = NewRegisterForm(auth, notify, opts.Logger.Named("register"))
	return a
}

// View reports the screen to show
func (a *App) View() View {
	switch {
	case a.session.IsAuthenticated():
		return ViewProducts
	case a.session.IsLoginMode():
		return ViewLogin
	default:
		return ViewRegister
	}
}

// Login returns the login form
func (a *App) Login() *LoginForm { return a.login }

// Register returns the register form
func (a *App) Register() *RegisterForm { return a.register }

// Session returns the session the app owns
func (a *App) Session() *session.Session { return a.session }

// ToggleAuthMode switches between login and register
func (a *App) ToggleAuthMode() {
	a.session.ToggleMode()
}

// Products returns the mounted product screen, nil while logged out
func (a *App) Products() *ProductScreen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen
}

func (a *App) onLoginSuccess(ctx context.Context, resp *apiclient.LoginResponse) {
	scope, ok := a.session.Login(resp.Token)
	if !ok {
		a.log.Debug("Ignoring login success while already authenticated")
		return
	}
	a.mount(ctx, scope)
}

// mount attaches a product screen to scope and loads it, unless the session
// ended after scope was issued
func (a *App) mount(ctx context.Context, scope context.Context) {
	s := NewProductScreen(scope, a.products, a.notify, ProductOptions{
		Placeholder: a.opts.Placeholder,
		Logger:      a.opts.Logger.Named("products"),
		Now:         a.opts.Now,
	})

	a.mu.Lock()
	if !a.session.IsAuthenticated() || scope.Err() != nil {
		a.mu.Unlock()
		s.Close()
		a.log.Debug("Session ended before the product screen was mounted")
		return
	}
	if a.screen != nil {
		a.screen.Close()
	}
	a.screen = s
	a.mu.Unlock()

	// load failures are shown by the list itself
	_ = s.Load(ctx)
}

// Logout closes the product screen and returns to the login form
func (a *App) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen != nil {
		a.screen.Close()
		a.screen = nil
	}
	a.session.Logout()
}

// Close releases the product screen, if any
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen != nil {
		a.screen.Close()
		a.screen = nil
	}
}
