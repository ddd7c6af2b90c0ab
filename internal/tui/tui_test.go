package tui

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/suteetoe/productdesk/internal/apiclient"
	"github.com/suteetoe/productdesk/internal/mockapi"
	"github.com/suteetoe/productdesk/internal/screen"
	"github.com/suteetoe/productdesk/internal/session"
)

const placeholder = "http://img/placeholder.png"

// script joins input lines the way a user would type them
func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func runScript(t *testing.T, input *strings.Reader) (string, *mockapi.Server) {
	t.Helper()
	backend := mockapi.New(mockapi.Options{RequireAuth: true})
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	client := apiclient.New(srv.URL, apiclient.WithPlaceholder(placeholder))
	var out bytes.Buffer
	ui := New(input, &out)
	app := screen.NewApp(session.New(client, nil), client, client, ui, screen.Options{Placeholder: placeholder})
	t.Cleanup(app.Close)

	if err := ui.Run(context.Background(), app); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String(), backend
}

var registerAndLogin = []string{
	"t",
	"l", "a@b.c", "pw", "pw",
	"t",
	"l", "a@b.c", "pw",
}

func TestFullSession(t *testing.T) {
	lines := append([]string{}, registerAndLogin...)
	lines = append(lines,
		"a", "Pen", "Stationery", "10000", "",
		"e 1", "Pen 2", "", "", "",
		"d 1", "1",
		"d 1", "2",
		"o",
		"q",
	)
	out, backend := runScript(t, script(lines...))

	for _, want := range []string{
		"[" + screen.TitleSuccess + "]",
		"1. Pen\n",
		screen.LabelCategory + ": Stationery",
		"10,000 đ",
		placeholder,
		"1. Pen 2\n",
		"[" + screen.TitleConfirmDelete + "] " + screen.MsgConfirmDelete,
		screen.MsgEmptyTitle,
		"== " + headingLogin + " ==",
		labelSignedIn + " a@b.c (" + labelExpires + " ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if n := len(backend.Store().Products()); n != 0 {
		t.Errorf("backend still has %d products", n)
	}
}

func TestInvalidPriceCanBeFixed(t *testing.T) {
	lines := append([]string{}, registerAndLogin...)
	lines = append(lines,
		"a", "Bad", "X", "abc", "",
		"y", "", "", "5000", "",
		"q",
	)
	out, backend := runScript(t, script(lines...))

	if !strings.Contains(out, "["+screen.TitleError+"] "+screen.MsgInvalidPrice) {
		t.Errorf("missing invalid price alert\n%s", out)
	}
	records := backend.Store().Products()
	if len(records) != 1 || float64(records[0].Price) != 5000 {
		t.Errorf("records = %+v", records)
	}
}

func TestPasswordMismatchAlert(t *testing.T) {
	out, _ := runScript(t, script("t", "l", "a@b.c", "one", "two", "q"))
	if !strings.Contains(out, "["+screen.TitleError+"] "+screen.MsgPasswordMismatch) {
		t.Errorf("missing mismatch alert\n%s", out)
	}
}

func TestEOFEndsRun(t *testing.T) {
	out, _ := runScript(t, strings.NewReader(""))
	if !strings.Contains(out, headingLogin) {
		t.Errorf("login view not rendered\n%s", out)
	}
}

func TestUnknownCommandAndBadIndex(t *testing.T) {
	lines := append([]string{}, registerAndLogin...)
	lines = append(lines, "zz", "e 9", "d x", "q")
	out, _ := runScript(t, script(lines...))

	if !strings.Contains(out, msgUnknown) {
		t.Errorf("missing unknown command message\n%s", out)
	}
	if strings.Count(out, msgBadIndex) != 2 {
		t.Errorf("expected two bad index messages\n%s", out)
	}
}

func TestPick(t *testing.T) {
	view := screen.ListView{State: screen.StateReady, Items: []screen.Item{{ID: "a"}, {ID: "b"}}}
	tests := []struct {
		arg    string
		wantID string
		ok     bool
	}{
		{"1", "a", true},
		{" 2 ", "b", true},
		{"0", "", false},
		{"3", "", false},
		{"x", "", false},
	}
	for _, tt := range tests {
		item, ok := pick(view, tt.arg)
		if ok != tt.ok || item.ID != tt.wantID {
			t.Errorf("pick(%q) = %+v, %v", tt.arg, item, ok)
		}
	}

	if _, ok := pick(screen.ListView{State: screen.StateLoading}, "1"); ok {
		t.Error("pick must fail while loading")
	}
}

func TestLoginKeepsEmailAfterFailure(t *testing.T) {
	out, _ := runScript(t, script(
		"t",
		"l", "a@b.c", "pw", "pw",
		"t",
		"l", "a@b.c", "wrong",
		"l", "", "pw",
		"q",
	))

	for _, want := range []string{
		labelEmail + " [a@b.c]",
		labelSignedIn + " a@b.c",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}
