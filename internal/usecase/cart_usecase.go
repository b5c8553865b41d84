// Package usecase contains the application-specific business rules.
package usecase

import "ordering/internal/domain/entity"

// CartStore owns the cart line list. Every operation completes synchronously;
// invalid input is rejected with a *errors.ValidationError and leaves the cart unchanged.
type CartStore interface {
	// AddItem merges into the entry with the same signature or appends a new one.
	AddItem(input *AddItemInput) error

	// IncreaseQty adds one unit to the matching entry. It is a no-op when no entry matches.
	IncreaseQty(itemID string, customizationIDs []string) error

	// DecreaseQty removes one unit, dropping the entry at zero. It is a no-op when no entry matches.
	DecreaseQty(itemID string, customizationIDs []string) error

	// RemoveItem drops the matching entry if present.
	RemoveItem(itemID string, customizationIDs []string) error

	Clear()

	Entries() []entity.CartEntry
	TotalItems() int
	TotalPrice() float64

	// Summary adds the configured delivery fee and discount to a non-empty cart.
	Summary() entity.CartSummary

	Snapshot() entity.CartSnapshot

	// Subscribe returns a channel that always holds the latest snapshot, starting with the current one.
	// Call the returned func to stop receiving; it closes the channel.
	Subscribe() (<-chan entity.CartSnapshot, func())
}

// --- Input DTOs ---

// AddItemInput carries the catalog values of the item being added.
type AddItemInput struct {
	ItemID         string                    `json:"itemId" validate:"required"`
	Name           string                    `json:"name"`
	ImageRef       string                    `json:"imageRef"`
	UnitBasePrice  float64                   `json:"unitBasePrice" validate:"gte=0"`
	Customizations []entity.CustomizationRef `json:"customizations" validate:"dive"`
	// Quantity defaults to 1 when zero.
	Quantity int `json:"quantity" validate:"gte=0"`
}
