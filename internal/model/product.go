package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the client-side view of a catalog item
type Product struct {
	ID       string
	Name     string
	Category string
	Price    float64
	ImageURI string
}

// Payload is the product body the API accepts on create and update
type Payload struct {
	Name     string `json:"idsanpham"`
	Category string `json:"loaisp"`
	Price    Amount `json:"gia"`
	Image    string `json:"hinhanh"`
}

// Record is a product as the API returns it
type Record struct {
	ID string `json:"_id"`
	Payload
}

// Amount is a price on the wire. It decodes from a JSON number or a numeric
// string and always encodes as a number.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler
func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == `""` {
		*a = 0
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*a = Amount(d.InexactFloat64())
	return nil
}

// FromRecord maps an API record, substituting placeholder for a missing image
func FromRecord(r Record, placeholder string) Product {
	image := r.Image
	if image == "" {
		image = placeholder
	}
	return Product{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category,
		Price:    float64(r.Price),
		ImageURI: image,
	}
}

// FromRecords maps every record independently
func FromRecords(records []Record, placeholder string) []Product {
	products := make([]Product, 0, len(records))
	for _, r := range records {
		products = append(products, FromRecord(r, placeholder))
	}
	return products
}

// ToPayload strips the identifier; the API addresses products by path instead
func ToPayload(p Product) Payload {
	return Payload{
		Name:     p.Name,
		Category: p.Category,
		Price:    Amount(p.Price),
		Image:    p.ImageURI,
	}
}

// LocalID is the identifier a new product carries until the server assigns one
func LocalID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}
