package catalog

import (
	"context"

	"github.com/libreria/sales-service/internal/catalog/dto"
)

type UseCase interface {
	ListBooks(ctx context.Context, query string) ([]dto.BookListing, error)
	GetBook(ctx context.Context, id string) (*dto.BookListing, error)
}
