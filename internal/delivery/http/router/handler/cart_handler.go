package handler

import (
	"log/slog"
	"net/http"

	"ordering/config"
	"ordering/internal/delivery/http/response"
	"ordering/internal/domain/entity"
	"ordering/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler exposes the cart store to the UI layer.
type CartHandler struct {
	store    usecase.CartStore
	currency string
	logger   *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(store usecase.CartStore, cfg *config.Config, logger *slog.Logger) *CartHandler {
	currency := ""
	if cfg.Cart != nil {
		currency = cfg.Cart.CurrencySymbol
	}

	return &CartHandler{
		store:    store,
		currency: currency,
		logger:   logger,
	}
}

// lineRequest addresses one cart line by its signature.
type lineRequest struct {
	ItemID           string   `json:"itemId" validate:"required"`
	CustomizationIDs []string `json:"customizationIds"`
}

// summaryView pairs the summary amounts with their display strings.
type summaryView struct {
	entity.CartSummary
	Display map[string]string `json:"display"`
}

// Get returns the cart contents.
func (h *CartHandler) Get(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.store.Snapshot(), "")
}

// Summary returns the payment breakdown.
func (h *CartHandler) Summary(c echo.Context) error {
	summary := h.store.Summary()

	return response.Success(c, http.StatusOK, summaryView{
		CartSummary: summary,
		Display: map[string]string{
			"subtotal":    entity.FormatPrice(summary.Subtotal, h.currency),
			"deliveryFee": entity.FormatPrice(summary.DeliveryFee, h.currency),
			"discount":    entity.FormatPrice(-summary.Discount, h.currency),
			"total":       entity.FormatPrice(summary.Total, h.currency),
		},
	}, "")
}

// AddItem adds an item or merges it into the matching line.
func (h *CartHandler) AddItem(c echo.Context) error {
	var input usecase.AddItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item")
	}

	if err := h.store.AddItem(&input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, h.store.Snapshot(), "Item added")
}

// IncreaseQty adds one unit to a line.
func (h *CartHandler) IncreaseQty(c echo.Context) error {
	return h.updateLine(c, h.store.IncreaseQty)
}

// DecreaseQty removes one unit from a line.
func (h *CartHandler) DecreaseQty(c echo.Context) error {
	return h.updateLine(c, h.store.DecreaseQty)
}

// RemoveItem drops a line.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	return h.updateLine(c, h.store.RemoveItem)
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	h.store.Clear()

	return response.Success(c, http.StatusOK, h.store.Snapshot(), "Cart cleared")
}

func (h *CartHandler) updateLine(c echo.Context, op func(itemID string, customizationIDs []string) error) error {
	var input lineRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart line")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := op(input.ItemID, input.CustomizationIDs); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.store.Snapshot(), "")
}
