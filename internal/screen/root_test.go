package screen

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/suteetoe/productdesk/internal/apiclient"
	"github.com/suteetoe/productdesk/internal/mockapi"
	"github.com/suteetoe/productdesk/internal/model"
	"github.com/suteetoe/productdesk/internal/session"
	"github.com/suteetoe/productdesk/pkg/jwtutil"
)

func newTestApp(auth AuthAPI, products ProductAPI) (*App, *recorder) {
	rec := &recorder{}
	app := NewApp(session.New(nil, nil), auth, products, rec, Options{Placeholder: testPlaceholder})
	return app, rec
}

func loginApp(t *testing.T, app *App) {
	t.Helper()
	app.Login().SetEmail("a@b.c")
	app.Login().SetPassword("pw")
	if err := app.Login().Submit(context.Background()); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestAppStartsOnLogin(t *testing.T) {
	app, _ := newTestApp(&fakeAuth{}, &fakeProducts{})
	if app.View() != ViewLogin {
		t.Errorf("View = %v", app.View())
	}
	app.ToggleAuthMode()
	if app.View() != ViewRegister {
		t.Errorf("View after toggle = %v", app.View())
	}
	app.ToggleAuthMode()
	if app.View() != ViewLogin {
		t.Errorf("View after second toggle = %v", app.View())
	}
	if app.Products() != nil {
		t.Error("no product screen while logged out")
	}
}

func TestLoginMountsProductsOnce(t *testing.T) {
	api := &fakeProducts{items: []model.Product{{ID: "a", Name: "Pen"}}}
	app, _ := newTestApp(&fakeAuth{}, api)

	loginApp(t, app)
	if app.View() != ViewProducts {
		t.Fatalf("View = %v", app.View())
	}
	first := app.Products()
	if first == nil || len(first.Products()) != 1 {
		t.Fatal("login should mount and load the product screen")
	}

	// a second success while authenticated changes nothing
	app.onLoginSuccess(context.Background(), &apiclient.LoginResponse{})
	if app.Products() != first {
		t.Error("second login replaced the product screen")
	}
	if lists, _, _, _ := api.counts(); lists != 1 {
		t.Errorf("lists = %d, want 1", lists)
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	api := &fakeProducts{}
	app, _ := newTestApp(&fakeAuth{}, api)
	loginApp(t, app)

	screen := app.Products()
	app.ToggleAuthMode()
	app.Logout()

	if app.View() != ViewLogin {
		t.Errorf("View after logout = %v", app.View())
	}
	if app.Products() != nil {
		t.Error("product screen still mounted")
	}
	if err := screen.Load(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("old screen Load = %v, want ErrClosed", err)
	}

	// logout while logged out is harmless
	app.Logout()
	if app.View() != ViewLogin {
		t.Errorf("View = %v", app.View())
	}
}

func TestProductFlowAgainstMockBackend(t *testing.T) {
	backend := mockapi.New(mockapi.Options{
		RequireAuth: true,
		JWT:         &jwtutil.JWTConfig{SigningKey: "test", ExpirationHours: 1},
	})
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	client := apiclient.New(srv.URL, apiclient.WithPlaceholder(testPlaceholder))
	rec := &recorder{}
	app := NewApp(session.New(client, nil), client, client, rec, Options{Placeholder: testPlaceholder})
	t.Cleanup(app.Close)
	ctx := context.Background()

	app.ToggleAuthMode()
	reg := app.Register()
	reg.SetEmail("pen@shop.vn")
	reg.SetPassword("pw")
	reg.SetConfirmPassword("pw")
	if err := reg.Submit(ctx); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := rec.last(); got.title != TitleSuccess {
		t.Errorf("register alert = %+v", got)
	}

	app.ToggleAuthMode()
	app.Login().SetEmail("pen@shop.vn")
	app.Login().SetPassword("pw")
	if err := app.Login().Submit(ctx); err != nil {
		t.Fatalf("login: %v", err)
	}
	if app.Session().Email() != "pen@shop.vn" {
		t.Errorf("session email = %q", app.Session().Email())
	}

	products := app.Products()
	if view := products.List(); view.State != StateReady || len(view.Items) != 0 {
		t.Fatalf("initial view = %+v", view)
	}

	products.OpenAdd()
	_ = products.SetField(FieldName, "Pen")
	_ = products.SetField(FieldCategory, "Stationery")
	_ = products.SetField(FieldPrice, "10000")
	if err := products.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	view := products.List()
	if len(view.Items) != 1 {
		t.Fatalf("items = %+v", view.Items)
	}
	pen := view.Items[0]
	if pen.Name != "Pen" || pen.Category != "Stationery" || pen.Price != "10,000 đ" || pen.Image != testPlaceholder {
		t.Errorf("pen = %+v", pen)
	}

	products.OpenAdd()
	_ = products.SetField(FieldName, "Bad")
	_ = products.SetField(FieldCategory, "X")
	_ = products.SetField(FieldPrice, "abc")
	if err := products.Save(ctx); !errors.Is(err, model.ErrInvalidPrice) {
		t.Errorf("save with bad price = %v", err)
	}
	if got := len(backend.Store().Products()); got != 1 {
		t.Errorf("backend has %d products, the invalid one must not be posted", got)
	}
	products.CancelForm()

	if err := products.RequestDelete(pen.ID).Confirm(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if view := products.List(); len(view.Items) != 0 {
		t.Errorf("items after delete = %+v", view.Items)
	}

	app.Logout()
	if client.Token() != "" {
		t.Error("logout must clear the bearer token")
	}
}

func TestLogoutBeforeMountLeavesNoScreen(t *testing.T) {
	api := &fakeProducts{}
	app, _ := newTestApp(&fakeAuth{}, api)

	scope, ok := app.Session().Login("")
	if !ok {
		t.Fatal("session login refused")
	}
	// the user logs out while the login response is still being handled
	app.Logout()
	app.mount(context.Background(), scope)

	if app.Products() != nil {
		t.Error("product screen mounted after logout")
	}
	if app.View() != ViewLogin {
		t.Errorf("View = %v", app.View())
	}
	if lists, _, _, _ := api.counts(); lists != 0 {
		t.Errorf("lists = %d, want 0", lists)
	}

	// a fresh login still mounts normally
	loginApp(t, app)
	if app.Products() == nil {
		t.Error("login after the aborted mount should mount the screen")
	}
}
