// internal/adapters/db/stock_repository.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/internal/core/ports"
)

// stockRepository implements ports.StockRepository. It returns the raw
// per-location rows; summing them is the projection layer's job.
type stockRepository struct {
	db     ports.Database
	logger *slog.Logger
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db ports.Database, logger *slog.Logger) ports.StockRepository {
	return &stockRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "stock")),
	}
}

// RowsForVariant retrieves all stock rows for a single variant
func (r *stockRepository) RowsForVariant(ctx context.Context, variantID uuid.UUID) ([]domain.StockRow, error) {
	qb := squirrel.Select("variant_id", "location", "quantity").
		From("stock").
		Where(squirrel.Eq{"variant_id": variantID}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stock query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock rows: %w", err)
	}
	defer rows.Close()

	var result []domain.StockRow
	for rows.Next() {
		var row domain.StockRow
		var location sql.NullString

		if err := rows.Scan(&row.VariantID, &location, &row.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		row.Location = location.String

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock rows: %w", err)
	}

	r.logger.DebugContext(ctx, "stock rows fetched",
		slog.String("variant_id", variantID.String()),
		slog.Int("rows", len(result)))

	return result, nil
}

// RowsForVariants retrieves stock rows for a set of variants in one query.
// Variants with no stock rows are simply absent from the result map.
func (r *stockRepository) RowsForVariants(ctx context.Context, variantIDs []uuid.UUID) (map[uuid.UUID][]domain.StockRow, error) {
	result := make(map[uuid.UUID][]domain.StockRow, len(variantIDs))
	if len(variantIDs) == 0 {
		return result, nil
	}

	qb := squirrel.Select("variant_id", "location", "quantity").
		From("stock").
		Where(squirrel.Eq{"variant_id": variantIDs}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stock query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row domain.StockRow
		var location sql.NullString

		if err := rows.Scan(&row.VariantID, &location, &row.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		row.Location = location.String

		result[row.VariantID] = append(result[row.VariantID], row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock rows: %w", err)
	}

	return result, nil
}
