package entities

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ItemDescriptor holds the visible attributes of one storefront item
type ItemDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"` // raw, currency prefixed ("$29.99")
	Image       string `json:"image"` // image src URL
}

// Amount parses the raw price into a decimal, dropping the currency prefix
func (d ItemDescriptor) Amount() (decimal.Decimal, error) {
	return ParsePrice(d.Price)
}

// Equal reports whether all four attributes match
func (d ItemDescriptor) Equal(other ItemDescriptor) bool {
	return d.Name == other.Name &&
		d.Description == other.Description &&
		d.Price == other.Price &&
		d.Image == other.Image
}

// ParsePrice converts "$29.99" style text into a decimal amount
func ParsePrice(raw string) (decimal.Decimal, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "$")
	if text == "" {
		return decimal.Zero, errors.Errorf("empty price %q", raw)
	}
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse price %q", raw)
	}
	return amount, nil
}

// CartItem is one line of the shopping cart
type CartItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
}
