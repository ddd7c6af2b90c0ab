// Package tui is a line-oriented terminal front-end for the screen view-models.
package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/suteetoe/productdesk/internal/screen"
)

const (
	headingLogin    = "Đăng nhập"
	headingRegister = "Đăng ký"
	labelEmail      = "Email"
	labelPassword   = "Mật khẩu"
	labelConfirm    = "Xác nhận mật khẩu"
	labelQuit       = "Thoát"
	labelLogout     = "Đăng xuất"
	labelEdit       = "Sửa"
	labelReload     = "Tải lại"
	labelSignedIn   = "Đăng nhập với"
	labelExpires    = "hết hạn"
	msgUnknown      = "Lệnh không hợp lệ"
	msgBadIndex     = "Số thứ tự không hợp lệ"
	msgFixForm      = "Sửa lại thông tin? [y/N]"
	msgKeepHint     = "(Enter để giữ nguyên)"
)

// UI renders the App to out and reads commands from in
type UI struct {
	out          io.Writer
	in           *bufio.Scanner
	log          *zap.Logger
	readPassword func() (string, error)

	// guards out; alerts may arrive from other goroutines
	mu sync.Mutex
}

// Option configures a UI
type Option func(*UI)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(u *UI) { u.log = l }
}

// WithTerminal reads passwords from fd without echo when fd is a terminal
func WithTerminal(fd int) Option {
	return func(u *UI) {
		if !term.IsTerminal(fd) {
			return
		}
		u.readPassword = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(u.out)
			if err != nil {
				return "", fmt.Errorf("read password: %w", err)
			}
			return string(b), nil
		}
	}
}

// New creates a UI. Without WithTerminal passwords are read as plain lines.
func New(in io.Reader, out io.Writer, opts ...Option) *UI {
	u := &UI{
		out: out,
		in:  bufio.NewScanner(in),
		log: zap.NewNop(),
	}
	u.readPassword = u.readLine
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Alert prints a blocking alert; it satisfies screen.Notifier
func (u *UI) Alert(title, message string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, "[%s] %s\n", title, message)
}

func (u *UI) printf(format string, args ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, format, args...)
}

func (u *UI) readLine() (string, error) {
	if !u.in.Scan() {
		if err := u.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(u.in.Text(), "\r"), nil
}

func (u *UI) prompt(label string) (string, error) {
	u.printf("%s: ", label)
	return u.readLine()
}

func (u *UI) promptPassword(label string) (string, error) {
	u.printf("%s: ", label)
	return u.readPassword()
}

// promptDefault keeps current when the answer is empty
func (u *UI) promptDefault(label, current string) (string, error) {
	if current == "" {
		return u.prompt(label)
	}
	u.printf("%s [%s] %s: ", label, current, msgKeepHint)
	line, err := u.readLine()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) == "" {
		return current, nil
	}
	return line, nil
}

// Run drives app until the user quits, input ends or ctx is done
func (u *UI) Run(ctx context.Context, app *screen.App) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			quit bool
			err  error
		)
		switch app.View() {
		case screen.ViewLogin:
			quit, err = u.loginView(ctx, app)
		case screen.ViewRegister:
			quit, err = u.registerView(ctx, app)
		case screen.ViewProducts:
			quit, err = u.productView(ctx, app)
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (u *UI) loginView(ctx context.Context, app *screen.App) (bool, error) {
	u.printf("\n== %s ==\n", headingLogin)
	if msg := app.Login().Error(); msg != "" {
		u.printf("%s\n", msg)
	}
	u.printf("[l] %s  [t] %s  [q] %s\n> ", headingLogin, screen.LabelToRegister, labelQuit)

	cmd, err := u.readLine()
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(cmd) {
	case "l":
		email, err := u.promptDefault(labelEmail, app.Login().Email())
		if err != nil {
			return false, err
		}
		password, err := u.promptPassword(labelPassword)
		if err != nil {
			return false, err
		}
		form := app.Login()
		form.SetEmail(email)
		form.SetPassword(password)
		// failures are alerted by the form
		if err := form.Submit(ctx); err != nil {
			u.log.Debug("Login submit failed", zap.Error(err))
		}
	case "t":
		app.ToggleAuthMode()
	case "q":
		return true, nil
	default:
		u.printf("%s\n", msgUnknown)
	}
	return false, nil
}

func (u *UI) registerView(ctx context.Context, app *screen.App) (bool, error) {
	u.printf("\n== %s ==\n", headingRegister)
	u.printf("[l] %s  [t] %s  [q] %s\n> ", headingRegister, screen.LabelToLogin, labelQuit)

	cmd, err := u.readLine()
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(cmd) {
	case "l":
		email, err := u.prompt(labelEmail)
		if err != nil {
			return false, err
		}
		password, err := u.promptPassword(labelPassword)
		if err != nil {
			return false, err
		}
		confirm, err := u.promptPassword(labelConfirm)
		if err != nil {
			return false, err
		}
		form := app.Register()
		form.SetEmail(email)
		form.SetPassword(password)
		form.SetConfirmPassword(confirm)
		if err := form.Submit(ctx); err != nil {
			u.log.Debug("Register submit failed", zap.Error(err))
		}
	case "t":
		app.ToggleAuthMode()
	case "q":
		return true, nil
	default:
		u.printf("%s\n", msgUnknown)
	}
	return false, nil
}

func (u *UI) productView(ctx context.Context, app *screen.App) (bool, error) {
	s := app.Products()
	if s == nil {
		// a session without a mounted screen has nothing to show
		app.Logout()
		return false, nil
	}

	view := s.List()
	u.renderHeader(app)
	u.renderList(view)
	u.printf("[a] %s  [e <n>] %s  [d <n>] %s  [r] %s  [o] %s  [q] %s\n> ",
		screen.LabelAdd, labelEdit, screen.LabelDelete, labelReload, labelLogout, labelQuit)

	line, err := u.readLine()
	if err != nil {
		return false, err
	}
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	u.log.Debug("Command", zap.String("cmd", cmd), zap.String("arg", arg))

	switch cmd {
	case "a":
		s.OpenAdd()
		return false, u.editForm(ctx, s)
	case "e":
		item, ok := pick(view, arg)
		if !ok {
			u.printf("%s\n", msgBadIndex)
			return false, nil
		}
		p, ok := s.Product(item.ID)
		if !ok {
			u.printf("%s\n", msgBadIndex)
			return false, nil
		}
		s.OpenEdit(p)
		return false, u.editForm(ctx, s)
	case "d":
		item, ok := pick(view, arg)
		if !ok {
			u.printf("%s\n", msgBadIndex)
			return false, nil
		}
		return false, u.confirmDelete(ctx, s.RequestDelete(item.ID))
	case "r":
		if err := s.Retry(ctx); err != nil {
			u.log.Debug("Reload failed", zap.Error(err))
		}
	case "o":
		app.Logout()
	case "q":
		return true, nil
	default:
		u.printf("%s\n", msgUnknown)
	}
	return false, nil
}

func (u *UI) renderHeader(app *screen.App) {
	u.printf("\n== %s ==\n", screen.TitleProducts)

	sess := app.Session()
	email := sess.Email()
	if email == "" {
		return
	}
	if exp := sess.ExpiresAt(); !exp.IsZero() {
		u.printf("%s %s (%s %s)\n", labelSignedIn, email, labelExpires, exp.Local().Format(time.DateTime))
		return
	}
	u.printf("%s %s\n", labelSignedIn, email)
}

func (u *UI) renderList(view screen.ListView) {
	switch view.State {
	case screen.StateLoading:
		u.printf("%s\n", screen.MsgLoading)
	case screen.StateError:
		u.printf("%s\n[r] %s\n", view.Error, screen.LabelRetry)
	default:
		if len(view.Items) == 0 {
			u.printf("%s\n%s\n", screen.MsgEmptyTitle, screen.MsgEmptyHint)
			return
		}
		for i, item := range view.Items {
			u.printf("%d. %s\n   %s: %s\n   %s\n   %s\n", i+1, item.Name, screen.LabelCategory, item.Category, item.Price, item.Image)
		}
	}
}

// pick resolves a 1-based list position
func pick(view screen.ListView, arg string) (screen.Item, bool) {
	if view.State != screen.StateReady {
		return screen.Item{}, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(view.Items) {
		return screen.Item{}, false
	}
	return view.Items[n-1], true
}

func (u *UI) editForm(ctx context.Context, s *screen.ProductScreen) error {
	for {
		form, open := s.Form()
		if !open {
			return nil
		}
		u.printf("\n-- %s --\n", form.Title)

		fields := []struct {
			field   screen.Field
			label   string
			current string
		}{
			{screen.FieldName, screen.LabelName, form.Fields.Name},
			{screen.FieldCategory, screen.LabelCategory, form.Fields.Category},
			{screen.FieldPrice, screen.LabelPrice, form.Fields.Price},
			{screen.FieldImage, screen.LabelImage, form.Fields.Image},
		}
		for _, f := range fields {
			value, err := u.promptDefault(f.label, f.current)
			if err != nil {
				s.CancelForm()
				return err
			}
			if err := s.SetField(f.field, value); err != nil {
				return nil
			}
		}

		err := s.Save(ctx)
		if err == nil || errors.Is(err, screen.ErrClosed) || errors.Is(err, screen.ErrNoForm) {
			return nil
		}
		u.log.Debug("Save failed", zap.Error(err))

		u.printf("%s ", msgFixForm)
		answer, rerr := u.readLine()
		if rerr != nil {
			s.CancelForm()
			return rerr
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			s.CancelForm()
			return nil
		}
	}
}

func (u *UI) confirmDelete(ctx context.Context, prompt *screen.DeleteConfirmation) error {
	u.printf("[%s] %s\n  1) %s  2) %s\n> ", prompt.Title, prompt.Message, prompt.CancelLabel, prompt.ConfirmLabel)
	answer, err := u.readLine()
	if err != nil {
		prompt.Cancel()
		return err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "2", strings.ToLower(prompt.ConfirmLabel):
		if err := prompt.Confirm(ctx); err != nil {
			u.log.Debug("Delete failed", zap.Error(err))
		}
	default:
		prompt.Cancel()
	}
	return nil
}
