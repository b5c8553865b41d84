package impl

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"ordering/config"
	"ordering/internal/domain/entity"
	domainerrors "ordering/internal/domain/errors"
	"ordering/internal/usecase"
	"ordering/internal/validation"

	"github.com/go-playground/validator/v10"
)

// cartStore implements the CartStore interface.
type cartStore struct {
	validate  *validator.Validate
	logger    *slog.Logger
	fees      config.CartConfig
	observers *broadcaster[entity.CartSnapshot]

	mu      sync.Mutex
	entries []entity.CartEntry
}

// NewCartStore is the constructor for cartStore.
func NewCartStore(cfg *config.Config, logger *slog.Logger) usecase.CartStore {
	var fees config.CartConfig
	if cfg.Cart != nil {
		fees = *cfg.Cart
	}

	return &cartStore{
		validate:  validation.New(),
		logger:    logger,
		fees:      fees,
		observers: newBroadcaster[entity.CartSnapshot](),
	}
}

func (s *cartStore) AddItem(input *usecase.AddItemInput) error {
	if err := s.validateAddItem(input); err != nil {
		return err
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	customizations := distinctCustomizations(input.Customizations)
	signature := entity.SignatureOf(input.ItemID, customizations)

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(signature); idx >= 0 {
		s.entries[idx].Quantity += quantity
	} else {
		s.entries = append(s.entries, entity.CartEntry{
			ItemID:         input.ItemID,
			Name:           input.Name,
			ImageRef:       input.ImageRef,
			UnitBasePrice:  input.UnitBasePrice,
			Quantity:       quantity,
			Customizations: customizations,
		})
	}

	s.logger.Debug("Cart item added",
		slog.String("item_id", input.ItemID),
		slog.Int("quantity", quantity),
		slog.Int("customizations", len(customizations)),
	)
	s.publishLocked()

	return nil
}

func (s *cartStore) IncreaseQty(itemID string, customizationIDs []string) error {
	return s.mutateEntry(itemID, customizationIDs, func(idx int) {
		s.entries[idx].Quantity++
	})
}

func (s *cartStore) DecreaseQty(itemID string, customizationIDs []string) error {
	return s.mutateEntry(itemID, customizationIDs, func(idx int) {
		s.entries[idx].Quantity--
		if s.entries[idx].Quantity <= 0 {
			s.removeAt(idx)
		}
	})
}

func (s *cartStore) RemoveItem(itemID string, customizationIDs []string) error {
	return s.mutateEntry(itemID, customizationIDs, s.removeAt)
}

func (s *cartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.publishLocked()
}

func (s *cartStore) Entries() []entity.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.entriesLocked()
}

func (s *cartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.totalItemsLocked()
}

func (s *cartStore) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.totalPriceLocked()
}

func (s *cartStore) Summary() entity.CartSummary {
	s.mu.Lock()
	items := s.totalItemsLocked()
	subtotal := s.totalPriceLocked()
	s.mu.Unlock()

	summary := entity.CartSummary{
		TotalItems: items,
		Subtotal:   subtotal,
		Total:      subtotal,
	}
	if items > 0 {
		summary.DeliveryFee = s.fees.DeliveryFee
		summary.Discount = s.fees.Discount
		summary.Total = subtotal + s.fees.DeliveryFee - s.fees.Discount
	}

	return summary
}

func (s *cartStore) Snapshot() entity.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *cartStore) Subscribe() (<-chan entity.CartSnapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.observers.subscribe(s.snapshotLocked())
}

// mutateEntry applies fn to the entry matching the signature. Absent entries are left alone.
func (s *cartStore) mutateEntry(itemID string, customizationIDs []string, fn func(idx int)) error {
	if strings.TrimSpace(itemID) == "" {
		return domainerrors.NewValidationError("itemId", "is required")
	}

	signature := entity.NewSignature(itemID, customizationIDs)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(signature)
	if idx < 0 {
		return nil
	}

	fn(idx)
	s.publishLocked()

	return nil
}

func (s *cartStore) indexOf(signature entity.Signature) int {
	for i := range s.entries {
		if s.entries[i].Signature() == signature {
			return i
		}
	}

	return -1
}

func (s *cartStore) removeAt(idx int) {
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
}

func (s *cartStore) entriesLocked() []entity.CartEntry {
	entries := make([]entity.CartEntry, 0, len(s.entries))
	for i := range s.entries {
		entries = append(entries, s.entries[i].Clone())
	}

	return entries
}

func (s *cartStore) totalItemsLocked() int {
	total := 0
	for i := range s.entries {
		total += s.entries[i].Quantity
	}

	return total
}

func (s *cartStore) totalPriceLocked() float64 {
	total := 0.0
	for i := range s.entries {
		total += s.entries[i].LineTotal()
	}

	return total
}

func (s *cartStore) snapshotLocked() entity.CartSnapshot {
	return entity.CartSnapshot{
		Entries:    s.entriesLocked(),
		TotalItems: s.totalItemsLocked(),
		TotalPrice: s.totalPriceLocked(),
	}
}

func (s *cartStore) publishLocked() {
	s.observers.publish(s.snapshotLocked())
}

func (s *cartStore) validateAddItem(input *usecase.AddItemInput) error {
	if input == nil {
		return domainerrors.NewValidationError("input", "is required")
	}

	if err := s.validate.Struct(input); err != nil {
		return validation.ToValidationError(err)
	}

	if math.IsInf(input.UnitBasePrice, 0) {
		return domainerrors.NewValidationError("unitBasePrice", "must be finite")
	}
	for i := range input.Customizations {
		if math.IsInf(input.Customizations[i].Price, 0) {
			return domainerrors.NewValidationError("customizations["+strconv.Itoa(i)+"].price", "must be finite")
		}
	}

	return nil
}

// distinctCustomizations drops repeated IDs, keeping the first occurrence.
func distinctCustomizations(refs []entity.CustomizationRef) []entity.CustomizationRef {
	if len(refs) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(refs))
	distinct := make([]entity.CustomizationRef, 0, len(refs))
	for _, ref := range refs {
		if _, dup := seen[ref.ID]; dup {
			continue
		}
		seen[ref.ID] = struct{}{}
		distinct = append(distinct, ref)
	}

	return distinct
}
