// internal/handlers/cart.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/internal/core/ports"
	"github.com/ahmadnk31/5g-leuven/internal/core/services"
)

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	service   ports.CartService
	variants  ports.VariantRepository
	projector *services.StockProjector
	logger    *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service ports.CartService, variants ports.VariantRepository, projector *services.StockProjector, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service:   service,
		variants:  variants,
		projector: projector,
		logger:    logger.With(slog.String("handler", "cart")),
	}
}

// GetCart handles GET /api/v1/carts/{cartId}
//
// The response is the stock-aware projection: quantities are clamped for
// display against availability fetched on this request, without touching the
// stored cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, err := uuid.Parse(r.PathValue("cartId"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid cart ID format")
		return
	}

	items, err := h.service.Items(ctx, cartID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load cart",
			slog.String("cart_id", cartID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	h.respondJSON(w, http.StatusOK, h.projector.ProjectCart(ctx, items))
}

// GetCartCount handles GET /api/v1/carts/{cartId}/count
func (h *CartHandler) GetCartCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, err := uuid.Parse(r.PathValue("cartId"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid cart ID format")
		return
	}

	count, err := h.service.TotalItemCount(ctx, cartID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count cart items",
			slog.String("cart_id", cartID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to count cart items")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]int{"total_item_count": count})
}

// AddItem handles POST /api/v1/carts/{cartId}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, err := uuid.Parse(r.PathValue("cartId"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid cart ID format")
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	variant, err := h.variants.FindByID(ctx, req.VariantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to look up variant",
			slog.String("variant_id", req.VariantID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to look up variant")
		return
	}
	if variant == nil {
		h.respondError(w, http.StatusNotFound, "Variant not found")
		return
	}

	if !h.projector.CanAdd(ctx, req.VariantID) {
		h.respondError(w, http.StatusConflict, "Variant is out of stock")
		return
	}

	item := req.ToDomain(variant)
	if err := h.service.AddItem(ctx, cartID, item); err != nil {
		h.logger.ErrorContext(ctx, "failed to add cart item",
			slog.String("cart_id", cartID.String()),
			slog.String("variant_id", req.VariantID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to add item to cart")
		return
	}

	h.logger.InfoContext(ctx, "cart item added",
		slog.String("cart_id", cartID.String()),
		slog.String("variant_id", req.VariantID.String()),
		slog.Int("quantity", item.Quantity))

	items, err := h.service.Items(ctx, cartID)
	if err != nil {
		h.respondJSON(w, http.StatusCreated, map[string]string{"message": "Item added to cart"})
		return
	}

	h.respondJSON(w, http.StatusCreated, h.projector.ProjectCart(ctx, items))
}

// UpdateItem handles PATCH /api/v1/carts/{cartId}/items/{variantId}
//
// A quantity of zero removes the line; negative quantities clamp to removal
// as well.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, err := uuid.Parse(r.PathValue("cartId"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid cart ID format")
		return
	}

	variantID, err := uuid.Parse(r.PathValue("variantId"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid variant ID format")
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.SetQuantity(ctx, cartID, variantID, req.Quantity); err != nil {
		h.logger.ErrorContext(ctx, "failed to update cart item",
			slog.String("cart_id", cartID.String()),
			slog.String("variant_id", variantID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to update cart item")
		return
	}

	items, err := h.service.Items(ctx, cartID)
	if err != nil {
		h.respondJSON(w, http.StatusOK, map[string]string{"message": "Cart item updated"})
		return
	}

	h.respondJSON(w, http.StatusOK, h.projector.ProjectCart(ctx, items))
}

// RemoveItem handles DELETE /api/v1/carts/{cartId}/items/{variantId}
//
// Removing a variant that is not in the cart succeeds; the operation is
// idempotent.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, err := uuid.Parse(r.PathValue("cartId"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid cart ID format")
		return
	}

	variantID, err := uuid.Parse(r.PathValue("variantId"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid variant ID format")
		return
	}

	if err := h.service.RemoveItem(ctx, cartID, variantID); err != nil {
		h.logger.ErrorContext(ctx, "failed to remove cart item",
			slog.String("cart_id", cartID.String()),
			slog.String("variant_id", variantID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message":    "Item removed from cart",
		"variant_id": variantID.String(),
	})
}

// ClearCart handles DELETE /api/v1/carts/{cartId}
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, err := uuid.Parse(r.PathValue("cartId"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid cart ID format")
		return
	}

	if err := h.service.ClearCart(ctx, cartID); err != nil {
		h.logger.ErrorContext(ctx, "failed to clear cart",
			slog.String("cart_id", cartID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	h.logger.InfoContext(ctx, "cart cleared",
		slog.String("cart_id", cartID.String()))

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}

// Helper methods

func (h *CartHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *CartHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// Request/Response DTOs

// AddItemRequest represents the request body for adding a cart item
type AddItemRequest struct {
	VariantID uuid.UUID `json:"variant_id"`
	Quantity  int       `json:"quantity"`
}

// Validate validates the add item request
func (r *AddItemRequest) Validate() error {
	if r.VariantID == uuid.Nil {
		return errors.New("variant_id is required")
	}
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	if r.Quantity < 0 {
		return fmt.Errorf("quantity must be positive")
	}
	return nil
}

// ToDomain converts the request to a domain line item, capturing the variant
// snapshot at add-time
func (r *AddItemRequest) ToDomain(variant *domain.Variant) domain.LineItem {
	return domain.LineItem{
		VariantID: r.VariantID,
		Quantity:  r.Quantity,
		Snapshot:  variant.Snapshot(),
		AddedAt:   time.Now(),
	}
}

// UpdateItemRequest represents the request body for updating a cart item
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}
