// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// CustomizationKind tags a customization option. The set is open; the known values are listed below.
type CustomizationKind string

const (
	CustomizationKindTopping CustomizationKind = "topping"
	CustomizationKindSide    CustomizationKind = "side"
)

// CustomizationRef is a snapshot of one selected customization option, taken when the item is added.
// Two refs are the same option iff their IDs match.
type CustomizationRef struct {
	ID    string            `json:"id" validate:"required"` // Catalog ID of the option.
	Name  string            `json:"name"`                   // Display name at add time.
	Price float64           `json:"price" validate:"gte=0"` // Surcharge per unit at add time.
	Kind  CustomizationKind `json:"kind"`                   // Option group, e.g. topping or side.
}

// Signature identifies a cart line: the item ID plus the unordered set of customization IDs.
type Signature string

// NewSignature builds the identity signature for an item and a list of customization IDs.
// Order and duplicates in customizationIDs do not affect the result.
func NewSignature(itemID string, customizationIDs []string) Signature {
	ids := slices.Clone(customizationIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	// Length-prefixed segments keep IDs containing separators from colliding.
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(itemID)))
	b.WriteByte(':')
	b.WriteString(itemID)
	for _, id := range ids {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(len(id)))
		b.WriteByte(':')
		b.WriteString(id)
	}

	return Signature(b.String())
}

// SignatureOf builds the identity signature from full customization refs.
func SignatureOf(itemID string, customizations []CustomizationRef) Signature {
	ids := make([]string, 0, len(customizations))
	for _, c := range customizations {
		ids = append(ids, c.ID)
	}

	return NewSignature(itemID, ids)
}

// CartEntry is one line of the cart.
type CartEntry struct {
	ItemID         string             `json:"itemId"`         // Catalog ID of the menu item.
	Name           string             `json:"name"`           // Display name at add time.
	ImageRef       string             `json:"imageRef"`       // Image reference supplied by the catalog.
	UnitBasePrice  float64            `json:"unitBasePrice"`  // Item price before customizations.
	Quantity       int                `json:"quantity"`       // Always >= 1 while the entry exists.
	Customizations []CustomizationRef `json:"customizations"` // Distinct by ID.
}

// Signature returns the identity signature of the entry.
func (e *CartEntry) Signature() Signature {
	return SignatureOf(e.ItemID, e.Customizations)
}

// UnitPrice is the price of one unit including all customization surcharges.
func (e *CartEntry) UnitPrice() float64 {
	price := e.UnitBasePrice
	for _, c := range e.Customizations {
		price += c.Price
	}

	return price
}

// LineTotal is UnitPrice multiplied by Quantity.
func (e *CartEntry) LineTotal() float64 {
	return e.UnitPrice() * float64(e.Quantity)
}

// Clone returns a deep copy so callers cannot mutate store-owned slices.
func (e *CartEntry) Clone() CartEntry {
	cloned := *e
	cloned.Customizations = slices.Clone(e.Customizations)

	return cloned
}

// CartSnapshot is a read-only view of the cart published to observers.
type CartSnapshot struct {
	Entries    []CartEntry `json:"entries"`
	TotalItems int         `json:"totalItems"`
	TotalPrice float64     `json:"totalPrice"`
}

// CartSummary is the payment breakdown shown before ordering.
type CartSummary struct {
	TotalItems  int     `json:"totalItems"`
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// RoundPrice rounds an amount to cents. Only presentation code should call it.
func RoundPrice(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatPrice renders an amount for display, e.g. FormatPrice(12, "$") == "$12.00".
func FormatPrice(amount float64, currencySymbol string) string {
	rounded := RoundPrice(amount)
	if rounded < 0 {
		return fmt.Sprintf("- %s%.2f", currencySymbol, -rounded)
	}

	return fmt.Sprintf("%s%.2f", currencySymbol, rounded)
}
