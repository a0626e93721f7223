package usecase

import (
	"context"
	"sort"

	"github.com/libreria/sales-service/internal/cart"
	"github.com/libreria/sales-service/internal/cart/dto"
	"github.com/libreria/sales-service/internal/catalog"
	"github.com/libreria/sales-service/internal/model"
	"github.com/libreria/sales-service/internal/stock"
	"github.com/libreria/sales-service/pkg/logger"
)

type cartUseCase struct {
	repo   cart.Repository
	books  catalog.Repository
	stock  stock.Repository
	logger logger.ZapLogger
}

func NewCartUseCase(repo cart.Repository, books catalog.Repository, stockRepo stock.Repository, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		repo:   repo,
		books:  books,
		stock:  stockRepo,
		logger: log,
	}
}

func (uc *cartUseCase) Add(ctx context.Context, sessionID string, input *dto.AddItemInput) error {
	if input.Quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	book, err := uc.books.FindByID(ctx, input.BookID)
	if err != nil {
		return err
	}
	if book == nil {
		return model.ErrBookNotFound
	}

	c, err := uc.repo.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	inCart := c.QuantityOf(book.ID)
	if err := uc.checkAvailability(ctx, book, inCart, inCart+input.Quantity); err != nil {
		return err
	}

	entry, ok := c.Items[book.ID]
	if !ok {
		// First add snapshots the current price; later price edits do not
		// reach this cart.
		entry = model.CartEntry{UnitPrice: book.Price.String()}
	}
	entry.Quantity += input.Quantity
	c.Items[book.ID] = entry

	return uc.repo.Save(ctx, sessionID, c)
}

func (uc *cartUseCase) SetQuantity(ctx context.Context, sessionID, bookID string, quantity int) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	book, err := uc.books.FindByID(ctx, bookID)
	if err != nil {
		return err
	}
	if book == nil {
		return model.ErrBookNotFound
	}

	c, err := uc.repo.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := uc.checkAvailability(ctx, book, c.QuantityOf(bookID), quantity); err != nil {
		return err
	}

	entry, ok := c.Items[bookID]
	if !ok {
		entry = model.CartEntry{UnitPrice: book.Price.String()}
	}
	entry.Quantity = quantity
	c.Items[bookID] = entry

	return uc.repo.Save(ctx, sessionID, c)
}

func (uc *cartUseCase) Remove(ctx context.Context, sessionID, bookID string) error {
	c, err := uc.repo.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if _, ok := c.Items[bookID]; !ok {
		return nil
	}
	delete(c.Items, bookID)
	return uc.repo.Save(ctx, sessionID, c)
}

func (uc *cartUseCase) Clear(ctx context.Context, sessionID string) error {
	return uc.repo.Delete(ctx, sessionID)
}

func (uc *cartUseCase) Snapshot(ctx context.Context, sessionID string) (*model.Cart, error) {
	return uc.repo.Get(ctx, sessionID)
}

func (uc *cartUseCase) View(ctx context.Context, sessionID string) (*dto.CartView, error) {
	c, err := uc.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(c.Items))
	for id := range c.Items {
		ids = append(ids, id)
	}

	books, err := uc.books.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	available, err := uc.stock.AvailabilityFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]dto.CartLine, 0, len(books))
	for _, book := range books {
		entry := c.Items[book.ID]
		lines = append(lines, dto.CartLine{
			BookID:    book.ID,
			Title:     book.Title,
			Author:    book.Author,
			Quantity:  entry.Quantity,
			UnitPrice: entry.Price(),
			LineTotal: entry.LineTotal(),
			Available: available[book.ID],
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Title < lines[j].Title })

	return &dto.CartView{
		Items:     lines,
		UnitCount: c.UnitCount(),
		Total:     c.TotalPrice(),
	}, nil
}

// checkAvailability is the advisory gate: carts are invisible to each other,
// so the authoritative check happens again inside checkout and confirm.
func (uc *cartUseCase) checkAvailability(ctx context.Context, book *model.Book, inCart, wanted int) error {
	available, err := uc.stock.AvailabilityOf(ctx, book.ID)
	if err != nil {
		return err
	}
	if wanted > available {
		return &model.StockInsufficientError{
			BookID:    book.ID,
			Title:     book.Title,
			Requested: wanted - inCart,
			InCart:    inCart,
			Available: available,
		}
	}
	return nil
}
