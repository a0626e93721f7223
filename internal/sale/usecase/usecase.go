package usecase

import (
	"context"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/libreria/sales-service/internal/cart"
	"github.com/libreria/sales-service/internal/model"
	"github.com/libreria/sales-service/internal/sale"
	"github.com/libreria/sales-service/internal/sale/dto"
	"github.com/libreria/sales-service/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Options struct {
	DefaultWarehouseID string
	WhatsAppNumber     string
}

type saleUseCase struct {
	repo    sale.Repository
	pending sale.PendingOrderStore
	carts   cart.UseCase
	locker  sale.Locker
	opts    Options
	logger  logger.ZapLogger
}

func NewSaleUseCase(repo sale.Repository, pending sale.PendingOrderStore, carts cart.UseCase, locker sale.Locker, opts Options, log logger.ZapLogger) sale.UseCase {
	return &saleUseCase{
		repo:    repo,
		pending: pending,
		carts:   carts,
		locker:  locker,
		opts:    opts,
		logger:  log,
	}
}

func (uc *saleUseCase) Checkout(ctx context.Context, sessionID string, input *dto.CheckoutInput) (*model.Sale, error) {
	if err := validateContact(&input.Contact); err != nil {
		return nil, err
	}

	c, err := uc.carts.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, model.ErrEmptyCart
	}

	now := time.Now()

	customer := &model.Customer{
		ID:        uuid.New().String(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		JoinedAt:  now,
	}
	if input.Email != "" {
		customer.Email = &input.Email
	}
	customerID, err := uc.repo.UpsertCustomer(ctx, customer)
	if err != nil {
		return nil, err
	}

	s := &model.Sale{
		ID:         uuid.New().String(),
		CustomerID: &customerID,
		Total:      c.TotalPrice(),
		Status:     model.SaleStatusPending,
		CreatedAt:  now,
	}

	lines := make([]model.SaleLine, 0, len(c.Items))
	for bookID, entry := range c.Items {
		lines = append(lines, model.SaleLine{
			ID:        uuid.New().String(),
			SaleID:    s.ID,
			BookID:    bookID,
			Quantity:  entry.Quantity,
			UnitPrice: entry.Price(),
			CreatedAt: now,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].BookID < lines[j].BookID })

	// Single atomic unit: if any line is short or any insert fails, no sale
	// exists and the cart below is never cleared.
	if err := uc.repo.CreateWithLines(ctx, s, lines); err != nil {
		return nil, err
	}

	if err := uc.carts.Clear(ctx, sessionID); err != nil {
		// The sale is committed; a lingering cart is an annoyance, not a
		// consistency problem.
		uc.logger.Warn("failed to clear cart after checkout", zap.String("sale_id", s.ID), zap.Error(err))
	}

	if err := uc.pending.Put(ctx, sessionID, &dto.PendingOrder{SaleID: s.ID, Contact: input.Contact}); err != nil {
		uc.logger.Warn("failed to stash pending order context", zap.String("sale_id", s.ID), zap.Error(err))
	}

	uc.logger.Info("checkout completed",
		zap.String("sale_id", s.ID),
		zap.Int("lines", len(lines)),
		zap.String("total", s.Total.StringFixed(2)),
	)
	return s, nil
}

func (uc *saleUseCase) Confirmation(ctx context.Context, sessionID string) (*dto.Confirmation, error) {
	order, err := uc.pending.Pop(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderContextNotFound
	}

	detail, err := uc.repo.FindDetail(ctx, order.SaleID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, model.ErrSaleNotFound
	}

	message := sale.HandoffMessage(detail, order.Contact)
	return &dto.Confirmation{
		OrderID:     detail.Sale.ID,
		Message:     message,
		WhatsAppURL: sale.WhatsAppLink(uc.opts.WhatsAppNumber, message),
	}, nil
}

func (uc *saleUseCase) Confirm(ctx context.Context, saleID string) (*model.Sale, error) {
	if err := uc.withSaleLock(ctx, saleID, func() error {
		prev, err := uc.repo.Confirm(ctx, saleID, uc.opts.DefaultWarehouseID)
		if err != nil {
			return err
		}
		if prev == model.SaleStatusConfirmed {
			uc.logger.Info("sale already confirmed, no stock effect", zap.String("sale_id", saleID))
		} else {
			uc.logger.Info("sale confirmed, stock deducted", zap.String("sale_id", saleID))
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return uc.mustFind(ctx, saleID)
}

func (uc *saleUseCase) Cancel(ctx context.Context, saleID string) (*model.Sale, error) {
	if err := uc.withSaleLock(ctx, saleID, func() error {
		_, err := uc.repo.Cancel(ctx, saleID)
		return err
	}); err != nil {
		return nil, err
	}

	return uc.mustFind(ctx, saleID)
}

func (uc *saleUseCase) GetSale(ctx context.Context, saleID string) (*dto.SaleDetail, error) {
	detail, err := uc.repo.FindDetail(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, model.ErrSaleNotFound
	}
	return detail, nil
}

func (uc *saleUseCase) withSaleLock(ctx context.Context, saleID string, fn func() error) error {
	lockKey := "lock:sale:" + saleID
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire sale lock", zap.String("sale_id", saleID), zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return errors.New("system busy, please try again later (lock)")
	}
	defer uc.locker.ReleaseLock(ctx, lockKey, lockValue)

	return fn()
}

func (uc *saleUseCase) mustFind(ctx context.Context, saleID string) (*model.Sale, error) {
	s, err := uc.repo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, model.ErrSaleNotFound
	}
	return s, nil
}

func validateContact(c *dto.Contact) error {
	fields := map[string]string{}

	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.Email = strings.TrimSpace(c.Email)

	if c.FirstName == "" {
		fields["first_name"] = "required"
	}
	if c.LastName == "" {
		fields["last_name"] = "required"
	}
	if c.Phone == "" {
		fields["phone"] = "required"
	}
	if c.Address == "" {
		fields["address"] = "required"
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			fields["email"] = "invalid email address"
		}
	}

	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}
