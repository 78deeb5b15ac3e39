// internal/handlers/catalog.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/internal/core/ports"
)

// CatalogHandler serves variant detail for storefront product pages
type CatalogHandler struct {
	variants ports.VariantRepository
	logger   *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(variants ports.VariantRepository, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		variants: variants,
		logger:   logger.With(slog.String("handler", "catalog")),
	}
}

// VariantResponse wraps a variant with its computed availability
type VariantResponse struct {
	domain.Variant
	AvailableStock int  `json:"available_stock"`
	CanAdd         bool `json:"can_add"`
}

// GetVariant handles GET /api/v1/variants/{id}
func (h *CatalogHandler) GetVariant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	variantID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid variant ID format")
		return
	}

	variant, err := h.variants.FindByID(ctx, variantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get variant",
			slog.String("variant_id", variantID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve variant")
		return
	}
	if variant == nil {
		h.respondError(w, http.StatusNotFound, "Variant not found")
		return
	}

	h.respondJSON(w, http.StatusOK, toVariantResponse(*variant))
}

// ListProductVariants handles GET /api/v1/products/{id}/variants
func (h *CatalogHandler) ListProductVariants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	variants, err := h.variants.FindByProductID(ctx, productID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list product variants",
			slog.String("product_id", productID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list variants")
		return
	}

	out := make([]VariantResponse, 0, len(variants))
	for i := range variants {
		out = append(out, toVariantResponse(variants[i]))
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": productID,
		"variants":   out,
	})
}

func toVariantResponse(v domain.Variant) VariantResponse {
	available := domain.AvailableStock(v.Stock)
	return VariantResponse{
		Variant:        v,
		AvailableStock: available,
		CanAdd:         available > 0,
	}
}

func (h *CatalogHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *CatalogHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
