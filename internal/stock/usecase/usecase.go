package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/libreria/sales-service/internal/catalog"
	"github.com/libreria/sales-service/internal/model"
	"github.com/libreria/sales-service/internal/stock"
	"github.com/libreria/sales-service/internal/stock/dto"
	"github.com/libreria/sales-service/pkg/logger"
	"go.uber.org/zap"
)

type stockUseCase struct {
	repo             stock.Repository
	books            catalog.Repository
	defaultWarehouse string
	logger           logger.ZapLogger
}

func NewStockUseCase(repo stock.Repository, books catalog.Repository, defaultWarehouse string, log logger.ZapLogger) stock.UseCase {
	return &stockUseCase{
		repo:             repo,
		books:            books,
		defaultWarehouse: defaultWarehouse,
		logger:           log,
	}
}

func (uc *stockUseCase) ReceiveStock(ctx context.Context, input *dto.ReceiptInput) (*model.StockEntry, error) {
	if input.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	book, err := uc.books.FindByID(ctx, input.BookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, model.ErrBookNotFound
	}

	warehouseID := input.WarehouseID
	if warehouseID == "" {
		warehouseID = uc.defaultWarehouse
	}
	if warehouseID == "" {
		return nil, model.ErrWarehouseNotConfigured
	}

	entry := &model.StockEntry{
		ID:          uuid.New().String(),
		BookID:      input.BookID,
		WarehouseID: warehouseID,
		Quantity:    input.Quantity,
		Note:        input.Note,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Append(ctx, entry); err != nil {
		return nil, err
	}

	uc.logger.Info("stock received",
		zap.String("book_id", entry.BookID),
		zap.String("warehouse_id", entry.WarehouseID),
		zap.Int("quantity", entry.Quantity),
	)
	return entry, nil
}

func (uc *stockUseCase) BookLedger(ctx context.Context, bookID string) (*dto.BookLedger, error) {
	book, err := uc.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, model.ErrBookNotFound
	}

	entries, err := uc.repo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	available := 0
	for _, e := range entries {
		available += e.Quantity
	}

	return &dto.BookLedger{
		BookID:    bookID,
		Available: available,
		Entries:   entries,
	}, nil
}
