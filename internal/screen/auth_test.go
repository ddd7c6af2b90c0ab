package screen

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/suteetoe/productdesk/internal/apiclient"
)

func TestLoginIncompleteMakesNoCall(t *testing.T) {
	api := &fakeAuth{}
	rec := &recorder{}
	called := 0
	form := NewLoginForm(api, rec, func(context.Context, *apiclient.LoginResponse) { called++ }, nil)

	form.SetEmail("   ")
	form.SetPassword("secret")
	if err := form.Submit(context.Background()); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Submit err = %v", err)
	}
	if api.logins != 0 || called != 0 {
		t.Errorf("logins=%d callbacks=%d", api.logins, called)
	}
	if got := rec.last(); got != (alert{TitleError, MsgLoginIncomplete}) {
		t.Errorf("alert = %+v", got)
	}
}

func TestLoginFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server error text", fmt.Errorf("login: %w", &apiclient.APIError{Status: 401, Message: "invalid credentials"}), "invalid credentials"},
		{"status only", fmt.Errorf("login: %w", &apiclient.APIError{Status: 500, Message: "Internal Server Error"}), MsgLoginFailed},
		{"transport", errors.New("dial tcp: connection refused"), MsgLoginFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAuth{loginErr: tt.err}
			rec := &recorder{}
			called := 0
			form := NewLoginForm(api, rec, func(context.Context, *apiclient.LoginResponse) { called++ }, nil)
			form.SetEmail("a@b.c")
			form.SetPassword("pw")

			if err := form.Submit(context.Background()); err == nil {
				t.Fatal("expected error")
			}
			if form.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", form.Error(), tt.want)
			}
			if got := rec.last(); got != (alert{TitleError, tt.want}) {
				t.Errorf("alert = %+v", got)
			}
			if called != 0 {
				t.Error("failure must not call the success callback")
			}
		})
	}
}

func TestLoginSuccessClearsError(t *testing.T) {
	api := &fakeAuth{loginErr: errors.New("down")}
	var got *apiclient.LoginResponse
	form := NewLoginForm(api, &recorder{}, func(_ context.Context, resp *apiclient.LoginResponse) { got = resp }, nil)
	form.SetEmail("a@b.c")
	form.SetPassword("pw")
	_ = form.Submit(context.Background())

	api.loginErr = nil
	api.loginResp = &apiclient.LoginResponse{Token: "tok"}
	form.SetPassword("pw")
	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if form.Error() != "" {
		t.Errorf("error not cleared: %q", form.Error())
	}
	if got == nil || got.Token != "tok" {
		t.Errorf("callback got %+v", got)
	}
	if form.Email() != "a@b.c" {
		t.Errorf("email should survive a login, got %q", form.Email())
	}
}

func TestRegisterMismatchMakesNoCall(t *testing.T) {
	api := &fakeAuth{}
	rec := &recorder{}
	form := NewRegisterForm(api, rec, nil)
	form.SetEmail("a@b.c")
	form.SetPassword("one")
	form.SetConfirmPassword("two")

	if err := form.Submit(context.Background()); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("Submit err = %v", err)
	}
	if api.registers != 0 {
		t.Errorf("registers = %d, want 0", api.registers)
	}
	if got := rec.last(); got != (alert{TitleError, MsgPasswordMismatch}) {
		t.Errorf("alert = %+v", got)
	}
}

func TestRegisterOutcomes(t *testing.T) {
	tests := []struct {
		name string
		resp *apiclient.RegisterResponse
		err  error
		want alert
	}{
		{"server message", &apiclient.RegisterResponse{Message: "User registered"}, nil, alert{TitleSuccess, "User registered"}},
		{"no message", &apiclient.RegisterResponse{}, nil, alert{TitleSuccess, MsgRegistered}},
		{"server error", nil, &apiclient.APIError{Status: 409, Message: "email already registered"}, alert{TitleError, "email already registered"}},
		{"no error text", nil, errors.New("timeout"), alert{TitleError, MsgRegisterFailed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAuth{regResp: tt.resp, regErr: tt.err}
			rec := &recorder{}
			form := NewRegisterForm(api, rec, nil)
			form.SetEmail("a@b.c")
			form.SetPassword("pw")
			form.SetConfirmPassword("pw")

			err := form.Submit(context.Background())
			if (err != nil) != (tt.err != nil) {
				t.Errorf("Submit err = %v", err)
			}
			if got := rec.last(); got != tt.want {
				t.Errorf("alert = %+v, want %+v", got, tt.want)
			}
			if api.registers != 1 {
				t.Errorf("registers = %d", api.registers)
			}
		})
	}
}
