package usecase

import (
	"context"
	"testing"
	"time"

	cartdto "github.com/libreria/sales-service/internal/cart/dto"
	"github.com/libreria/sales-service/internal/model"
	"github.com/libreria/sales-service/internal/sale"
	"github.com/libreria/sales-service/internal/sale/dto"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSaleRepo struct {
	sales      map[string]*model.Sale
	lines      map[string][]model.SaleLine
	titles     map[string]string
	customers  map[string]string
	createErr  error
	deductions map[string]int
	warehouses []string
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		sales:      map[string]*model.Sale{},
		lines:      map[string][]model.SaleLine{},
		titles:     map[string]string{},
		customers:  map[string]string{},
		deductions: map[string]int{},
	}
}

func (r *fakeSaleRepo) UpsertCustomer(ctx context.Context, c *model.Customer) (string, error) {
	if id, ok := r.customers[c.Phone]; ok {
		return id, nil
	}
	r.customers[c.Phone] = c.ID
	return c.ID, nil
}

func (r *fakeSaleRepo) CreateWithLines(ctx context.Context, s *model.Sale, lines []model.SaleLine) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *s
	r.sales[s.ID] = &cp
	r.lines[s.ID] = lines
	return nil
}

func (r *fakeSaleRepo) FindByID(ctx context.Context, id string) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) FindDetail(ctx context.Context, id string) (*dto.SaleDetail, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	detail := &dto.SaleDetail{Sale: *s}
	for _, l := range r.lines[id] {
		detail.Lines = append(detail.Lines, dto.SaleLineDetail{SaleLine: l, Title: r.titles[l.BookID]})
		detail.ComputedTotal = detail.ComputedTotal.Add(l.LineTotal())
	}
	return detail, nil
}

func (r *fakeSaleRepo) Confirm(ctx context.Context, id, warehouseID string) (model.SaleStatus, error) {
	return r.transition(id, model.SaleStatusConfirmed, warehouseID)
}

func (r *fakeSaleRepo) Cancel(ctx context.Context, id string) (model.SaleStatus, error) {
	return r.transition(id, model.SaleStatusCancelled, "")
}

func (r *fakeSaleRepo) transition(id string, next model.SaleStatus, warehouseID string) (model.SaleStatus, error) {
	s, ok := r.sales[id]
	if !ok {
		return "", model.ErrSaleNotFound
	}
	prev := s.Status
	deduct, noop, err := sale.ResolveTransition(prev, next)
	if err != nil {
		return prev, err
	}
	if noop {
		return prev, nil
	}
	if deduct {
		r.warehouses = append(r.warehouses, warehouseID)
		for _, l := range r.lines[id] {
			r.deductions[l.BookID] -= l.Quantity
		}
	}
	s.Status = next
	return prev, nil
}

type fakePendingStore struct {
	orders map[string]*dto.PendingOrder
	puts   int
}

func newFakePendingStore() *fakePendingStore {
	return &fakePendingStore{orders: map[string]*dto.PendingOrder{}}
}

func (s *fakePendingStore) Put(ctx context.Context, sessionID string, order *dto.PendingOrder) error {
	s.orders[sessionID] = order
	s.puts++
	return nil
}

func (s *fakePendingStore) Pop(ctx context.Context, sessionID string) (*dto.PendingOrder, error) {
	order, ok := s.orders[sessionID]
	if !ok {
		return nil, nil
	}
	delete(s.orders, sessionID)
	return order, nil
}

type fakeCarts struct {
	cart    *model.Cart
	cleared bool
}

func (c *fakeCarts) Snapshot(ctx context.Context, sessionID string) (*model.Cart, error) {
	if c.cart == nil {
		return model.NewCart(), nil
	}
	return c.cart, nil
}

func (c *fakeCarts) Clear(ctx context.Context, sessionID string) error {
	c.cleared = true
	c.cart = nil
	return nil
}

func (c *fakeCarts) View(ctx context.Context, sessionID string) (*cartdto.CartView, error) {
	return nil, nil
}

func (c *fakeCarts) Add(ctx context.Context, sessionID string, input *cartdto.AddItemInput) error {
	return nil
}

func (c *fakeCarts) SetQuantity(ctx context.Context, sessionID, bookID string, quantity int) error {
	return nil
}

func (c *fakeCarts) Remove(ctx context.Context, sessionID, bookID string) error { return nil }

type fakeLocker struct {
	available bool
	acquired  int
	released  int
}

func (l *fakeLocker) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if !l.available {
		return false, nil
	}
	l.acquired++
	return true, nil
}

func (l *fakeLocker) ReleaseLock(ctx context.Context, key, value string) error {
	l.released++
	return nil
}

func validInput() *dto.CheckoutInput {
	return &dto.CheckoutInput{Contact: dto.Contact{
		FirstName: "Ana",
		LastName:  "Lopez",
		Phone:     "+5215511122233",
		Address:   "Av. Reforma 123, CDMX",
	}}
}

func stockedCart() *model.Cart {
	c := model.NewCart()
	c.Items["book-a"] = model.CartEntry{Quantity: 2, UnitPrice: "10.00"}
	c.Items["book-b"] = model.CartEntry{Quantity: 1, UnitPrice: "5.50"}
	return c
}

func newTestUseCase(repo *fakeSaleRepo, pending *fakePendingStore, carts *fakeCarts) sale.UseCase {
	return NewSaleUseCase(repo, pending, carts, &fakeLocker{available: true}, Options{
		DefaultWarehouseID: "wh-1",
		WhatsAppNumber:     "+525620576697",
	}, zap.NewNop())
}

func TestCheckoutEmptyCart(t *testing.T) {
	repo := newFakeSaleRepo()
	pending := newFakePendingStore()
	carts := &fakeCarts{}
	uc := newTestUseCase(repo, pending, carts)

	_, err := uc.Checkout(context.Background(), "sess-1", validInput())

	require.ErrorIs(t, err, model.ErrEmptyCart)
	assert.Empty(t, repo.sales)
	assert.False(t, carts.cleared)
	assert.Zero(t, pending.puts)
}

func TestCheckoutInvalidContact(t *testing.T) {
	repo := newFakeSaleRepo()
	pending := newFakePendingStore()
	carts := &fakeCarts{cart: stockedCart()}
	uc := newTestUseCase(repo, pending, carts)

	input := validInput()
	input.Phone = "  "
	input.Email = "not-an-email"

	_, err := uc.Checkout(context.Background(), "sess-1", input)

	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "phone")
	assert.Contains(t, vErr.Fields, "email")
	assert.Empty(t, repo.sales)
	assert.False(t, carts.cleared, "a rejected checkout must leave the cart intact")
}

func TestCheckoutStorageFailureKeepsCart(t *testing.T) {
	repo := newFakeSaleRepo()
	repo.createErr = errors.New("connection reset")
	pending := newFakePendingStore()
	carts := &fakeCarts{cart: stockedCart()}
	uc := newTestUseCase(repo, pending, carts)

	_, err := uc.Checkout(context.Background(), "sess-1", validInput())

	require.Error(t, err)
	assert.False(t, carts.cleared)
	assert.Zero(t, pending.puts)
}

func TestCheckoutSuccess(t *testing.T) {
	repo := newFakeSaleRepo()
	pending := newFakePendingStore()
	carts := &fakeCarts{cart: stockedCart()}
	uc := newTestUseCase(repo, pending, carts)

	s, err := uc.Checkout(context.Background(), "sess-1", validInput())

	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusPending, s.Status)
	assert.True(t, s.Total.Equal(decimal.RequireFromString("25.50")))

	lines := repo.lines[s.ID]
	require.Len(t, lines, 2)
	assert.Equal(t, "book-a", lines[0].BookID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, "book-b", lines[1].BookID)

	assert.True(t, carts.cleared)
	require.Contains(t, pending.orders, "sess-1")
	assert.Equal(t, s.ID, pending.orders["sess-1"].SaleID)
	assert.Equal(t, "Ana", pending.orders["sess-1"].Contact.FirstName)

	require.NotNil(t, s.CustomerID)
	assert.Equal(t, repo.customers["+5215511122233"], *s.CustomerID)
}

func TestCheckoutReusesCustomerByPhone(t *testing.T) {
	repo := newFakeSaleRepo()
	pending := newFakePendingStore()
	carts := &fakeCarts{cart: stockedCart()}
	uc := newTestUseCase(repo, pending, carts)

	first, err := uc.Checkout(context.Background(), "sess-1", validInput())
	require.NoError(t, err)

	carts.cart = stockedCart()
	second, err := uc.Checkout(context.Background(), "sess-2", validInput())
	require.NoError(t, err)

	require.NotNil(t, first.CustomerID)
	require.NotNil(t, second.CustomerID)
	assert.Equal(t, *first.CustomerID, *second.CustomerID, "repeat buyers keep a single customer record")
}

func TestConfirmationConsumedOnFirstRead(t *testing.T) {
	repo := newFakeSaleRepo()
	repo.titles["book-a"] = "El Principito"
	repo.titles["book-b"] = "Rayuela"
	pending := newFakePendingStore()
	carts := &fakeCarts{cart: stockedCart()}
	uc := newTestUseCase(repo, pending, carts)

	s, err := uc.Checkout(context.Background(), "sess-1", validInput())
	require.NoError(t, err)

	conf, err := uc.Confirmation(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, s.ID, conf.OrderID)
	assert.Contains(t, conf.Message, "El Principito (x2)")
	assert.Contains(t, conf.Message, "$25.50")
	assert.Contains(t, conf.WhatsAppURL, "wa.me/+525620576697")

	_, err = uc.Confirmation(context.Background(), "sess-1")
	assert.ErrorIs(t, err, model.ErrOrderContextNotFound)
}

func TestConfirmDeductsExactlyOnce(t *testing.T) {
	repo := newFakeSaleRepo()
	pending := newFakePendingStore()
	carts := &fakeCarts{cart: stockedCart()}
	uc := newTestUseCase(repo, pending, carts)

	s, err := uc.Checkout(context.Background(), "sess-1", validInput())
	require.NoError(t, err)

	confirmed, err := uc.Confirm(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusConfirmed, confirmed.Status)
	assert.Equal(t, -2, repo.deductions["book-a"])
	assert.Equal(t, -1, repo.deductions["book-b"])
	assert.Equal(t, []string{"wh-1"}, repo.warehouses)

	// Replaying the confirmation must not touch the ledger again.
	again, err := uc.Confirm(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusConfirmed, again.Status)
	assert.Equal(t, -2, repo.deductions["book-a"])
	assert.Equal(t, -1, repo.deductions["book-b"])

	_, err = uc.Cancel(context.Background(), s.ID)
	assert.ErrorIs(t, err, model.ErrInvalidStatusTransition)
}

func TestCancelHasNoStockEffect(t *testing.T) {
	repo := newFakeSaleRepo()
	pending := newFakePendingStore()
	carts := &fakeCarts{cart: stockedCart()}
	uc := newTestUseCase(repo, pending, carts)

	s, err := uc.Checkout(context.Background(), "sess-1", validInput())
	require.NoError(t, err)

	cancelled, err := uc.Cancel(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusCancelled, cancelled.Status)
	assert.Empty(t, repo.deductions)

	_, err = uc.Confirm(context.Background(), s.ID)
	assert.ErrorIs(t, err, model.ErrInvalidStatusTransition)
}

func TestConfirmUnknownSale(t *testing.T) {
	uc := newTestUseCase(newFakeSaleRepo(), newFakePendingStore(), &fakeCarts{})

	_, err := uc.Confirm(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrSaleNotFound)
}

func TestConfirmLockUnavailable(t *testing.T) {
	repo := newFakeSaleRepo()
	uc := NewSaleUseCase(repo, newFakePendingStore(), &fakeCarts{}, &fakeLocker{available: false}, Options{
		DefaultWarehouseID: "wh-1",
		WhatsAppNumber:     "+525620576697",
	}, zap.NewNop())

	_, err := uc.Confirm(context.Background(), "sale-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "busy")
}
