package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/events"
	"github.com/nikolayk812/backoffice/internal/port"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

var (
	currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})
)

type recordingEmitter struct {
	mu            sync.Mutex
	audits        []events.AuditRecord
	notifications []events.Notification
}

func (e *recordingEmitter) Audit(_ context.Context, record events.AuditRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.audits = append(e.audits, record)
}

func (e *recordingEmitter) Notify(_ context.Context, n events.Notification) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.notifications = append(e.notifications, n)
}

func (e *recordingEmitter) auditActions(entity string) []events.AuditAction {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result []events.AuditAction
	for _, a := range e.audits {
		if a.Entity == entity {
			result = append(result, a.Action)
		}
	}
	return result
}

func (e *recordingEmitter) notificationsOf(typ events.NotificationType) []events.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result []events.Notification
	for _, n := range e.notifications {
		if n.Type == typ {
			result = append(result, n)
		}
	}
	return result
}

func (e *recordingEmitter) reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.audits = nil
	e.notifications = nil
}

type enqueued struct {
	name    string
	payload any
}

type recordingQueue struct {
	mu   sync.Mutex
	jobs []enqueued
	err  error
}

func (q *recordingQueue) Enqueue(_ context.Context, name string, payload any) (uuid.UUID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.err != nil {
		return uuid.Nil, q.err
	}

	q.jobs = append(q.jobs, enqueued{name: name, payload: payload})
	return uuid.New(), nil
}

func (q *recordingQueue) names() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	var result []string
	for _, j := range q.jobs {
		result = append(result, j.name)
	}
	return result
}

func (q *recordingQueue) reset() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.jobs = nil
	q.err = nil
}

// inlineRunner runs tasks on the caller's goroutine so assertions can follow the call directly.
type inlineRunner struct {
	mu     sync.Mutex
	errs   []error
	reject bool
}

func (r *inlineRunner) Go(ctx context.Context, _ string, task func(ctx context.Context) error) bool {
	if r.reject {
		return false
	}

	err := task(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.errs = append(r.errs, err)
	}
	return true
}

func (r *inlineRunner) errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errs...)
}

// blockingQueue holds every Enqueue until release is closed.
type blockingQueue struct {
	recordingQueue
	started chan struct{}
	release chan struct{}

	mu      sync.Mutex
	ctxErrs []error
}

func newBlockingQueue() *blockingQueue {
	return &blockingQueue{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (q *blockingQueue) Enqueue(ctx context.Context, name string, payload any) (uuid.UUID, error) {
	q.started <- struct{}{}
	<-q.release

	q.mu.Lock()
	q.ctxErrs = append(q.ctxErrs, ctx.Err())
	q.mu.Unlock()

	return q.recordingQueue.Enqueue(ctx, name, payload)
}

func (q *blockingQueue) contextErrors() []error {
	q.mu.Lock()
	defer q.mu.Unlock()

	return append([]error(nil), q.ctxErrs...)
}

type staticFlags map[string]bool

func (f staticFlags) Bool(key string, fallback bool) bool {
	if v, ok := f[key]; ok {
		return v
	}
	return fallback
}

// failingTransactor swaps the payment repository of every transaction for one that cannot insert.
type failingTransactor struct {
	inner port.Transactor
	err   error
}

func (t failingTransactor) WithinTx(ctx context.Context, fn func(repos port.Repositories) error) error {
	return t.inner.WithinTx(ctx, func(repos port.Repositories) error {
		repos.Payments = failingPayments{PaymentRepository: repos.Payments, err: t.err}
		return fn(repos)
	})
}

type failingPayments struct {
	port.PaymentRepository
	err error
}

func (p failingPayments) InsertPayment(context.Context, domain.Payment) (domain.Payment, error) {
	return domain.Payment{}, p.err
}

var errInsertFailed = errors.New("insert failed")

func money(amount string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(amount), currency.USD)
}

func newProduct(price string, stock, lowStockLevel int) domain.NewProduct {
	return domain.NewProduct{
		Name:           gofakeit.ProductName(),
		SKU:            gofakeit.UUID(),
		Price:          money(price),
		Status:         domain.ProductStatusActive,
		InitialStock:   stock,
		LowStockLevel:  lowStockLevel,
		StockThreshold: lowStockLevel,
	}
}

func assertMoney(t *testing.T, expected string, actual domain.Money) {
	t.Helper()

	assert.Truef(t, decimal.RequireFromString(expected).Equal(actual.Amount), "expected %s, got %s", expected, actual)
	assert.Equal(t, currency.USD.String(), actual.Currency.String())
}

func assertDiff(t *testing.T, expected, actual any, opts ...cmp.Option) {
	t.Helper()

	opts = append(opts, currencyComparer, decimalComparer, cmpopts.EquateEmpty())
	if diff := cmp.Diff(expected, actual, opts...); diff != "" {
		t.Errorf("mismatch (-expected +actual):\n%s", diff)
	}
}
