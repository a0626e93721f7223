package catalog

import (
	"context"

	"github.com/libreria/sales-service/internal/catalog/dto"
	"github.com/libreria/sales-service/internal/model"
)

type Repository interface {
	// FindAvailable lists books with positive ledger availability, ordered
	// by title. A non-empty query filters title/author/publisher name
	// case-insensitively.
	FindAvailable(ctx context.Context, query string) ([]dto.BookListing, error)

	// FindAvailableByIDs is the join-back step for search results; books
	// with no remaining availability are dropped.
	FindAvailableByIDs(ctx context.Context, ids []string) ([]dto.BookListing, error)

	// GetListing returns one book with its availability, sold out or not.
	GetListing(ctx context.Context, id string) (*dto.BookListing, error)

	FindByID(ctx context.Context, id string) (*model.Book, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Book, error)
}
