// internal/core/services/projector.go
package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/internal/core/ports"
)

// StockProjector combines cart lines with freshly fetched stock rows to
// produce display-safe views. Stock is re-read on every projection; nothing
// here mutates the cart. A failed stock fetch projects as zero availability,
// disabling purchase controls rather than risking oversell.
type StockProjector struct {
	stock  ports.StockRepository
	logger *slog.Logger
}

// NewStockProjector creates a new stock projector
func NewStockProjector(stock ports.StockRepository, logger *slog.Logger) *StockProjector {
	return &StockProjector{
		stock:  stock,
		logger: logger.With(slog.String("service", "stock_projector")),
	}
}

// ProjectItem projects a single line item against current stock
func (p *StockProjector) ProjectItem(ctx context.Context, item domain.LineItem) domain.LineItemView {
	rows, err := p.stock.RowsForVariant(ctx, item.VariantID)
	if err != nil {
		p.logger.WarnContext(ctx, "stock lookup failed, projecting as out of stock",
			slog.String("variant_id", item.VariantID.String()),
			slog.String("error", err.Error()))
		rows = nil
	}
	return domain.ProjectLineItem(item, rows)
}

// ProjectCart projects all lines of a cart, fetching stock for every variant
// in one round trip. Variants missing from the result map project as out of
// stock.
func (p *StockProjector) ProjectCart(ctx context.Context, items []domain.LineItem) domain.CartView {
	view := domain.CartView{
		Items:    make([]domain.LineItemView, 0, len(items)),
		Subtotal: decimal.Zero,
	}

	variantIDs := make([]uuid.UUID, 0, len(items))
	for i := range items {
		variantIDs = append(variantIDs, items[i].VariantID)
	}

	rowsByVariant := map[uuid.UUID][]domain.StockRow{}
	if len(variantIDs) > 0 {
		var err error
		rowsByVariant, err = p.stock.RowsForVariants(ctx, variantIDs)
		if err != nil {
			p.logger.WarnContext(ctx, "bulk stock lookup failed, projecting cart as out of stock",
				slog.Int("variants", len(variantIDs)),
				slog.String("error", err.Error()))
			rowsByVariant = map[uuid.UUID][]domain.StockRow{}
		}
	}

	for i := range items {
		itemView := domain.ProjectLineItem(items[i], rowsByVariant[items[i].VariantID])
		view.Items = append(view.Items, itemView)
		view.TotalItemCount += items[i].Quantity
		view.Subtotal = view.Subtotal.Add(itemView.LineTotal)
	}

	return view
}

// CanAdd reports whether the variant currently accepts add-to-cart at all
func (p *StockProjector) CanAdd(ctx context.Context, variantID uuid.UUID) bool {
	rows, err := p.stock.RowsForVariant(ctx, variantID)
	if err != nil {
		p.logger.WarnContext(ctx, "stock lookup failed, treating variant as out of stock",
			slog.String("variant_id", variantID.String()),
			slog.String("error", err.Error()))
		return false
	}
	return domain.CanAddToCart(rows)
}
