package httpapi_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
)

var errNotStubbed = errors.New("not stubbed")

type fakeOrders struct {
	createCalls int
	createFunc  func(in domain.CreateOrderInput) (domain.Order, error)
	getFunc     func(id uuid.UUID) (domain.Order, error)
	searchFunc  func(filter domain.OrderFilter) ([]domain.Order, error)
	updateFunc  func(id uuid.UUID, in domain.UpdateOrderInput) (domain.Order, error)
	deleteFunc  func(id uuid.UUID) error
	addItemFunc func(in domain.AddOrderItemInput) (domain.Order, error)
	lastActorID uuid.UUID
}

func (f *fakeOrders) CreateOrder(_ context.Context, actorID uuid.UUID, in domain.CreateOrderInput) (domain.Order, error) {
	f.createCalls++
	f.lastActorID = actorID
	if f.createFunc == nil {
		return domain.Order{}, errNotStubbed
	}
	return f.createFunc(in)
}

func (f *fakeOrders) GetOrder(_ context.Context, id uuid.UUID) (domain.Order, error) {
	if f.getFunc == nil {
		return domain.Order{}, errNotStubbed
	}
	return f.getFunc(id)
}

func (f *fakeOrders) SearchOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if f.searchFunc == nil {
		return nil, errNotStubbed
	}
	return f.searchFunc(filter)
}

func (f *fakeOrders) UpdateOrder(_ context.Context, id, actorID uuid.UUID, in domain.UpdateOrderInput) (domain.Order, error) {
	f.lastActorID = actorID
	if f.updateFunc == nil {
		return domain.Order{}, errNotStubbed
	}
	return f.updateFunc(id, in)
}

func (f *fakeOrders) DeleteOrder(_ context.Context, id, actorID uuid.UUID) error {
	f.lastActorID = actorID
	if f.deleteFunc == nil {
		return errNotStubbed
	}
	return f.deleteFunc(id)
}

func (f *fakeOrders) AddOrderItem(_ context.Context, actorID uuid.UUID, in domain.AddOrderItemInput) (domain.Order, error) {
	f.lastActorID = actorID
	if f.addItemFunc == nil {
		return domain.Order{}, errNotStubbed
	}
	return f.addItemFunc(in)
}

type fakePayments struct {
	createFunc func(in domain.CreatePaymentInput) (domain.Payment, error)
	updateFunc func(id uuid.UUID, in domain.UpdatePaymentInput) (domain.Payment, error)
	deleteErr  error
}

func (f *fakePayments) CreatePayment(_ context.Context, _ uuid.UUID, in domain.CreatePaymentInput) (domain.Payment, error) {
	if f.createFunc == nil {
		return domain.Payment{}, errNotStubbed
	}
	return f.createFunc(in)
}

func (f *fakePayments) GetPayment(context.Context, uuid.UUID) (domain.Payment, error) {
	return domain.Payment{}, domain.ErrPaymentNotFound
}

func (f *fakePayments) ListOrderPayments(context.Context, uuid.UUID) ([]domain.Payment, error) {
	return nil, nil
}

func (f *fakePayments) UpdatePayment(_ context.Context, id, _ uuid.UUID, in domain.UpdatePaymentInput) (domain.Payment, error) {
	if f.updateFunc == nil {
		return domain.Payment{}, errNotStubbed
	}
	return f.updateFunc(id, in)
}

func (f *fakePayments) DeletePayment(context.Context, uuid.UUID, uuid.UUID) error {
	return f.deleteErr
}

type fakeInventory struct {
	restocked  []domain.StockAdjustment
	lastFilter domain.InventoryHistoryFilter
}

func (f *fakeInventory) Restock(_ context.Context, adj domain.StockAdjustment) (domain.Inventory, error) {
	if err := adj.Validate(); err != nil {
		return domain.Inventory{}, err
	}
	f.restocked = append(f.restocked, adj)
	return domain.Inventory{ProductID: adj.ProductID, Stock: adj.Quantity}, nil
}

func (f *fakeInventory) GetByProductID(context.Context, uuid.UUID) (domain.Inventory, error) {
	return domain.Inventory{}, domain.ErrInventoryNotFound
}

func (f *fakeInventory) GetHistories(_ context.Context, filter domain.InventoryHistoryFilter) (domain.InventoryHistoryPage, error) {
	f.lastFilter = filter
	n := filter.Normalize()
	return domain.InventoryHistoryPage{Items: []domain.InventoryHistory{}, Page: n.Page, Limit: n.Limit}, nil
}

type fakeProducts struct {
	created []domain.NewProduct
}

func (f *fakeProducts) CreateProduct(_ context.Context, _ uuid.UUID, in domain.NewProduct) (domain.Product, error) {
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}
	f.created = append(f.created, in)
	return domain.Product{ID: uuid.New(), Name: in.Name, SKU: in.SKU, Price: in.Price, Status: in.Status}, nil
}

type fakeJobs struct{}

func (fakeJobs) Status(context.Context, uuid.UUID) (domain.Job, error) {
	return domain.Job{}, domain.ErrJobNotFound
}

type fakeSettings struct {
	values  map[string]string
	reloads int
}

func (f *fakeSettings) All() map[string]string { return f.values }

func (f *fakeSettings) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeSettings) Reload(context.Context) error {
	f.reloads++
	return nil
}
