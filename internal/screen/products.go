package screen

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/suteetoe/productdesk/internal/model"
	"github.com/suteetoe/productdesk/pkg/config"
	"github.com/suteetoe/productdesk/pkg/logger"
)

// ListState is what the list area currently shows
type ListState int

const (
	StateLoading ListState = iota
	StateError
	StateReady
)

// Item is one product as the list renders it
type Item struct {
	ID       string
	Name     string
	Category string
	Price    string
	Image    string
}

// ListView is a snapshot of the list area
type ListView struct {
	State ListState
	Error string
	Items []Item
}

// Field names an input of the product form
type Field int

const (
	FieldName Field = iota
	FieldCategory
	FieldPrice
	FieldImage
)

// FormView is a snapshot of the open product form
type FormView struct {
	EditingID  string
	Title      string
	Fields     model.Form
	Submitting bool
}

type productForm struct {
	editingID  string
	fields     model.Form
	submitting bool
}

// ProductOptions tunes a ProductScreen
type ProductOptions struct {
	Placeholder string
	Logger      *zap.Logger
	Now         func() time.Time
}

// ProductScreen is the authenticated product manager. Every mutation is
// followed by a full reload; local state is never patched.
//
// All requests are bound to the screen's scope: once Close is called, or the
// parent scope ends, in-flight requests are cancelled and late results dropped.
type ProductScreen struct {
	api         ProductAPI
	notify      Notifier
	log         *zap.Logger
	placeholder string
	now         func() time.Time

	scope  context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	products   []model.Product
	errMsg     string
	pending    int
	loaded     bool
	generation uint64
	form       *productForm
}

// NewProductScreen creates a screen whose lifetime is bounded by parent
func NewProductScreen(parent context.Context, api ProductAPI, notify Notifier, opts ProductOptions) *ProductScreen {
	s := &ProductScreen{
		api:         api,
		notify:      notify,
		log:         opts.Logger,
		placeholder: opts.Placeholder,
		now:         opts.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.placeholder == "" {
		s.placeholder = config.DefaultPlaceholderImage
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.scope, s.cancel = context.WithCancel(parent)
	return s
}

// Close ends the screen's scope
func (s *ProductScreen) Close() {
	s.cancel()
}

func (s *ProductScreen) closed() bool {
	return s.scope.Err() != nil
}

// bind derives a request context that ends with either ctx or the screen scope
// and carries the screen's logger to the API client
func (s *ProductScreen) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(logger.WithContext(ctx, s.log))
	stop := context.AfterFunc(s.scope, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Load fetches the list. Only the most recently started load may publish its result.
func (s *ProductScreen) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed() {
		s.mu.Unlock()
		return ErrClosed
	}
	s.generation++
	gen := s.generation
	s.pending++
	s.mu.Unlock()

	reqCtx, done := s.bind(ctx)
	products, err := s.api.List(reqCtx)
	done()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--

	if s.closed() {
		s.log.Debug("Dropping list response for closed screen")
		return ErrClosed
	}
	if gen != s.generation {
		s.log.Debug("Dropping superseded list response", zap.Uint64("generation", gen))
		return nil
	}
	s.loaded = true
	if err != nil {
		s.errMsg = MsgLoadFailed
		s.log.Error("Failed to load products", zap.Error(err))
		return err
	}

	s.products = products
	s.errMsg = ""
	s.log.Info("Products loaded", zap.Int("count", len(products)))
	return nil
}

// Retry reloads after a failed load
func (s *ProductScreen) Retry(ctx context.Context) error {
	return s.Load(ctx)
}

// Loading reports whether any request of this screen is in flight
func (s *ProductScreen) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending > 0
}

// List returns what the list area shows
func (s *ProductScreen) List() ListView {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.pending > 0 || !s.loaded:
		return ListView{State: StateLoading}
	case s.errMsg != "":
		return ListView{State: StateError, Error: s.errMsg}
	}

	items := make([]Item, 0, len(s.products))
	for _, p := range s.products {
		items = append(items, Item{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Price:    model.FormatPrice(p.Price),
			Image:    p.ImageURI,
		})
	}
	return ListView{State: StateReady, Items: items}
}

// Products returns a copy of the last loaded products
func (s *ProductScreen) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Product(nil), s.products...)
}

// Product looks up a loaded product by id
func (s *ProductScreen) Product(id string) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// OpenAdd opens an empty form for a new product
func (s *ProductScreen) OpenAdd() {
	s.mu.Lock()
	s.form = &productForm{}
	s.mu.Unlock()
}

// OpenEdit opens the form pre-filled from p
func (s *ProductScreen) OpenEdit(p model.Product) {
	s.mu.Lock()
	s.form = &productForm{editingID: p.ID, fields: model.FormFromProduct(p)}
	s.mu.Unlock()
}

// CancelForm closes the form without saving
func (s *ProductScreen) CancelForm() {
	s.mu.Lock()
	s.form = nil
	s.mu.Unlock()
}

// Form returns the open form, if any
func (s *ProductScreen) Form() (FormView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == nil {
		return FormView{}, false
	}
	title := TitleAddForm
	if s.form.editingID != "" {
		title = TitleEditForm
	}
	return FormView{
		EditingID:  s.form.editingID,
		Title:      title,
		Fields:     s.form.fields,
		Submitting: s.form.submitting,
	}, true
}

// SetField updates one input of the open form
func (s *ProductScreen) SetField(field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == nil {
		return ErrNoForm
	}
	switch field {
	case FieldName:
		s.form.fields.Name = value
	case FieldCategory:
		s.form.fields.Category = value
	case FieldPrice:
		s.form.fields.Price = value
	case FieldImage:
		s.form.fields.Image = value
	}
	return nil
}

// Save validates the form and creates or updates the product. Validation
// failures alert and never reach the network. On success the form closes and
// the list reloads.
func (s *ProductScreen) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.form == nil {
		s.mu.Unlock()
		return ErrNoForm
	}
	if s.form.submitting {
		s.mu.Unlock()
		return ErrBusy
	}
	form := s.form
	editing := form.editingID != ""
	id := form.editingID
	if !editing {
		id = model.LocalID(s.now())
	}

	product, err := form.fields.Validate(id, s.placeholder)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, model.ErrInvalidPrice) {
			s.notify.Alert(TitleError, MsgInvalidPrice)
		} else {
			s.notify.Alert(TitleError, MsgMissingFields)
		}
		return err
	}
	form.submitting = true
	s.pending++
	s.mu.Unlock()

	reqCtx, done := s.bind(ctx)
	if editing {
		_, err = s.api.Update(reqCtx, product)
	} else {
		_, err = s.api.Create(reqCtx, product)
	}
	done()

	s.mu.Lock()
	s.pending--
	form.submitting = false
	if s.closed() {
		s.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		s.mu.Unlock()
		s.log.Error("Error saving product", zap.Bool("editing", editing), zap.String("product_id", id), zap.Error(err))
		if editing {
			s.notify.Alert(TitleError, MsgUpdateFailed)
		} else {
			s.notify.Alert(TitleError, MsgCreateFailed)
		}
		return err
	}
	if s.form == form {
		s.form = nil
	}
	s.mu.Unlock()

	s.log.Info("Product saved", zap.Bool("editing", editing), zap.String("name", product.Name))
	if err := s.Load(ctx); err != nil && !errors.Is(err, ErrClosed) {
		// the list shows its own error state
		s.log.Warn("Reload after save failed", zap.Error(err))
	}
	return nil
}

// DeleteConfirmation is the two-choice prompt that must be answered before a delete
type DeleteConfirmation struct {
	ID           string
	Title        string
	Message      string
	CancelLabel  string
	ConfirmLabel string

	screen   *ProductScreen
	mu       sync.Mutex
	answered bool
}

// RequestDelete prepares the confirmation. Nothing is sent until Confirm.
func (s *ProductScreen) RequestDelete(id string) *DeleteConfirmation {
	return &DeleteConfirmation{
		ID:           id,
		Title:        TitleConfirmDelete,
		Message:      MsgConfirmDelete,
		CancelLabel:  LabelCancel,
		ConfirmLabel: LabelDelete,
		screen:       s,
	}
}

func (d *DeleteConfirmation) answer() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.answered {
		return ErrAnswered
	}
	d.answered = true
	return nil
}

// Cancel dismisses the prompt; the list is left untouched
func (d *DeleteConfirmation) Cancel() {
	_ = d.answer()
}

// Confirm deletes the product and reloads the list
func (d *DeleteConfirmation) Confirm(ctx context.Context) error {
	if err := d.answer(); err != nil {
		return err
	}
	s := d.screen

	s.mu.Lock()
	if s.closed() {
		s.mu.Unlock()
		return ErrClosed
	}
	s.pending++
	s.mu.Unlock()

	reqCtx, done := s.bind(ctx)
	err := s.api.Delete(reqCtx, d.ID)
	done()

	s.mu.Lock()
	s.pending--
	closed := s.closed()
	s.mu.Unlock()

	if closed {
		return ErrClosed
	}
	if err != nil {
		s.log.Error("Error deleting product", zap.String("product_id", d.ID), zap.Error(err))
		s.notify.Alert(TitleError, MsgDeleteFailed)
		return err
	}

	s.log.Info("Product deleted", zap.String("product_id", d.ID))
	if err := s.Load(ctx); err != nil && !errors.Is(err, ErrClosed) {
		s.log.Warn("Reload after delete failed", zap.Error(err))
	}
	return nil
}
