package model

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrMissingFields is returned when name, category or price is blank
	ErrMissingFields = errors.New("product name, category and price are required")
	// ErrInvalidPrice is returned when the price is not a positive number
	ErrInvalidPrice = errors.New("product price must be a positive number")
)

// Form holds the raw text of the add/edit product form
type Form struct {
	Name     string
	Category string
	Price    string
	Image    string
}

// FormFromProduct pre-populates a form for editing
func FormFromProduct(p Product) Form {
	return Form{
		Name:     p.Name,
		Category: p.Category,
		Price:    strconv.FormatFloat(p.Price, 'f', -1, 64),
		Image:    p.ImageURI,
	}
}

// ParsePrice parses user input strictly; "12abc" and "abc" are both rejected,
// as are values too large to send such as "1e400"
func ParsePrice(raw string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.IsPositive() {
		return 0, ErrInvalidPrice
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || f == 0 {
		return 0, ErrInvalidPrice
	}
	return f, nil
}

// Validate checks the form and returns the product it describes.
// An empty image falls back to placeholder.
func (f Form) Validate(id, placeholder string) (Product, error) {
	name := strings.TrimSpace(f.Name)
	category := strings.TrimSpace(f.Category)
	if name == "" || category == "" || strings.TrimSpace(f.Price) == "" {
		return Product{}, ErrMissingFields
	}

	price, err := ParsePrice(f.Price)
	if err != nil {
		return Product{}, err
	}

	image := strings.TrimSpace(f.Image)
	if image == "" {
		image = placeholder
	}

	return Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    price,
		ImageURI: image,
	}, nil
}
