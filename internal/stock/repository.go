package stock

import (
	"context"

	"github.com/libreria/sales-service/internal/model"
)

type Repository interface {
	// Append writes one signed ledger entry. The ledger is never mutated in
	// place; corrections are further entries.
	Append(ctx context.Context, entry *model.StockEntry) error

	// AvailabilityOf sums all entries for a book across warehouses. Zero and
	// negative sums are valid answers.
	AvailabilityOf(ctx context.Context, bookID string) (int, error)

	// AvailabilityFor batches the same sum for several books; books with no
	// entries are present with 0.
	AvailabilityFor(ctx context.Context, bookIDs []string) (map[string]int, error)

	ListByBook(ctx context.Context, bookID string) ([]model.StockEntry, error)
}
