package screen

import (
	"context"
	"fmt"
	"sync"

	"github.com/suteetoe/productdesk/internal/apiclient"
	"github.com/suteetoe/productdesk/internal/model"
)

type alert struct{ title, message string }

type recorder struct {
	mu     sync.Mutex
	alerts []alert
}

func (r *recorder) Alert(title, message string) {
	r.mu.Lock()
	r.alerts = append(r.alerts, alert{title, message})
	r.mu.Unlock()
}

func (r *recorder) all() []alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]alert(nil), r.alerts...)
}

func (r *recorder) last() alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.alerts) == 0 {
		return alert{}
	}
	return r.alerts[len(r.alerts)-1]
}

// fakeProducts is an in-memory ProductAPI that counts calls. Hooks run after
// the call is counted and may block.
type fakeProducts struct {
	mu      sync.Mutex
	items   []model.Product
	nextID  int
	listErr error
	saveErr error
	delErr  error

	lists, creates, updates, deletes int
	sent                             []model.Product

	listHook func(ctx context.Context, call int) error
	saveHook func(ctx context.Context) error
}

func (f *fakeProducts) List(ctx context.Context) ([]model.Product, error) {
	f.mu.Lock()
	f.lists++
	call := f.lists
	items := append([]model.Product{}, f.items...)
	err := f.listErr
	hook := f.listHook
	f.mu.Unlock()

	if hook != nil {
		if herr := hook(ctx, call); herr != nil {
			return nil, herr
		}
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (f *fakeProducts) Create(ctx context.Context, p model.Product) (model.Product, error) {
	f.mu.Lock()
	f.creates++
	f.sent = append(f.sent, p)
	hook := f.saveHook
	err := f.saveErr
	f.mu.Unlock()

	if hook != nil {
		if herr := hook(ctx); herr != nil {
			return model.Product{}, herr
		}
	}
	if err != nil {
		return model.Product{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = fmt.Sprintf("srv-%d", f.nextID)
	f.items = append(f.items, p)
	return p, nil
}

func (f *fakeProducts) Update(ctx context.Context, p model.Product) (model.Product, error) {
	f.mu.Lock()
	f.updates++
	f.sent = append(f.sent, p)
	hook := f.saveHook
	err := f.saveErr
	f.mu.Unlock()

	if hook != nil {
		if herr := hook(ctx); herr != nil {
			return model.Product{}, herr
		}
	}
	if err != nil {
		return model.Product{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == p.ID {
			f.items[i] = p
		}
	}
	return p, nil
}

func (f *fakeProducts) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.delErr != nil {
		return f.delErr
	}
	kept := f.items[:0]
	for _, p := range f.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeProducts) counts() (lists, creates, updates, deletes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists, f.creates, f.updates, f.deletes
}

type fakeAuth struct {
	mu        sync.Mutex
	logins    int
	registers int
	loginResp *apiclient.LoginResponse
	loginErr  error
	regResp   *apiclient.RegisterResponse
	regErr    error
}

func (f *fakeAuth) Login(ctx context.Context, creds apiclient.Credentials) (*apiclient.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.loginResp == nil {
		return &apiclient.LoginResponse{}, nil
	}
	return f.loginResp, nil
}

func (f *fakeAuth) Register(ctx context.Context, creds apiclient.Credentials) (*apiclient.RegisterResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers++
	if f.regErr != nil {
		return nil, f.regErr
	}
	if f.regResp == nil {
		return &apiclient.RegisterResponse{}, nil
	}
	return f.regResp, nil
}
