// internal/adapters/db/variant_repository.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/internal/core/ports"
)

// variantRepository implements ports.VariantRepository over the catalog
// tables. It joins the product parent and size/color labels so a single
// fetch yields everything a cart snapshot needs.
type variantRepository struct {
	db     ports.Database
	logger *slog.Logger
}

// NewVariantRepository creates a new variant repository
func NewVariantRepository(db ports.Database, logger *slog.Logger) ports.VariantRepository {
	return &variantRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "variant")),
	}
}

func variantSelect() squirrel.SelectBuilder {
	return squirrel.Select(
		"v.id", "v.product_id", "v.name", "v.sku", "v.price",
		"s.name AS size_label", "c.name AS color_label",
		"p.name AS product_name", "p.description", "p.price AS product_price", "p.category_id",
		"p.created_at AS product_created_at", "p.updated_at AS product_updated_at",
		"v.created_at", "v.updated_at",
	).
		From("product_variants v").
		Join("products p ON p.id = v.product_id").
		LeftJoin("sizes s ON s.id = v.size_id").
		LeftJoin("colors c ON c.id = v.color_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *variantRepository) scanVariant(row pgx.Row) (*domain.Variant, error) {
	v := &domain.Variant{Product: &domain.Product{}}
	var skuStr, sizeLabel, colorLabel, description sql.NullString
	var price pgtype.Numeric
	var categoryID *uuid.UUID

	err := row.Scan(
		&v.ID, &v.ProductID, &v.Name, &skuStr, &price,
		&sizeLabel, &colorLabel,
		&v.Product.Name, &description, &v.Product.Price, &categoryID,
		&v.Product.CreatedAt, &v.Product.UpdatedAt,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.SKU = skuStr.String
	v.SizeLabel = sizeLabel.String
	v.ColorLabel = colorLabel.String
	v.Product.ID = v.ProductID
	v.Product.Description = description.String
	if categoryID != nil {
		v.Product.CategoryID = *categoryID
	}

	if price.Valid {
		if val, err := price.Value(); err == nil && val != nil {
			if d, err := decimal.NewFromString(fmt.Sprint(val)); err == nil {
				v.Price = &d
			}
		}
	}

	return v, nil
}

// FindByID retrieves a variant with its product parent, size/color labels,
// image URLs, and current stock rows. Returns nil without error when the
// variant does not exist.
func (r *variantRepository) FindByID(ctx context.Context, variantID uuid.UUID) (*domain.Variant, error) {
	query, args, err := variantSelect().Where(squirrel.Eq{"v.id": variantID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build variant query: %w", err)
	}

	v, err := r.scanVariant(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find variant: %w", err)
	}

	if v.ImageURLs, err = r.imageURLs(ctx, variantID); err != nil {
		return nil, err
	}
	if v.Stock, err = r.stockRows(ctx, variantID); err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "variant fetched",
		slog.String("variant_id", variantID.String()),
		slog.Int("stock_rows", len(v.Stock)))

	return v, nil
}

// FindByProductID retrieves all variants of a product with images and stock
func (r *variantRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]domain.Variant, error) {
	query, args, err := variantSelect().
		Where(squirrel.Eq{"v.product_id": productID}).
		OrderBy("v.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build variant query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	var variants []domain.Variant
	for rows.Next() {
		v, err := r.scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variants: %w", err)
	}

	for i := range variants {
		if variants[i].ImageURLs, err = r.imageURLs(ctx, variants[i].ID); err != nil {
			return nil, err
		}
		if variants[i].Stock, err = r.stockRows(ctx, variants[i].ID); err != nil {
			return nil, err
		}
	}

	return variants, nil
}

func (r *variantRepository) imageURLs(ctx context.Context, variantID uuid.UUID) ([]string, error) {
	query, args, err := squirrel.Select("url").
		From("images").
		Where(squirrel.Eq{"variant_id": variantID}).
		OrderBy("is_primary DESC", "created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build image query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan image url: %w", err)
		}
		urls = append(urls, url)
	}

	return urls, rows.Err()
}

func (r *variantRepository) stockRows(ctx context.Context, variantID uuid.UUID) ([]domain.StockRow, error) {
	query, args, err := squirrel.Select("variant_id", "location", "quantity").
		From("stock").
		Where(squirrel.Eq{"variant_id": variantID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stock query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock: %w", err)
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

	return result, rows.Err()
}
