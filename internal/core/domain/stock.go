// internal/core/domain/stock.go
package domain

import (
	"github.com/google/uuid"
)

// StockRow is one warehouse/location row for a variant. A variant can have
// stock in several locations; availability is the sum across all of them.
type StockRow struct {
	VariantID uuid.UUID `json:"variant_id"`
	Location  string    `json:"location,omitempty"`
	Quantity  int       `json:"quantity"`
}

// AvailableStock sums the quantity across all rows. Negative row quantities
// (bad data) count as zero. An empty or nil slice yields zero, which the
// projection treats as out of stock.
func AvailableStock(rows []StockRow) int {
	total := 0
	for i := range rows {
		if rows[i].Quantity > 0 {
			total += rows[i].Quantity
		}
	}
	return total
}
