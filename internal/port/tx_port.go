package port

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
)

// Repositories are bound to one transaction.
type Repositories struct {
	Products  ProductRepository
	Inventory InventoryRepository
	Orders    OrderRepository
	Payments  PaymentRepository
}

type Transactor interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}

type JobRepository interface {
	InsertJob(ctx context.Context, name string, payload json.RawMessage) (domain.Job, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (domain.Job, error)
	UpdateJobStatus(ctx context.Context, job domain.Job) error
}

type SettingRepository interface {
	ListSettings(ctx context.Context) ([]domain.Setting, error)
	UpsertSetting(ctx context.Context, key, value string) error
}
