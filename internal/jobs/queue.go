// Package jobs hands background tasks to the external task queue and records their state.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/port"
	"go.uber.org/zap"
)

const LowStockJob = "inventory.low_stock"

// Sender delivers one job to the queue transport and returns the transport message id.
type Sender interface {
	Send(ctx context.Context, job domain.Job) (string, error)
}

type Queue struct {
	repo   port.JobRepository
	sender Sender
	logger *zap.Logger
}

// NewQueue accepts a nil sender; jobs then stay queued until a transport is configured.
func NewQueue(repo port.JobRepository, sender Sender, logger *zap.Logger) *Queue {
	return &Queue{repo: repo, sender: sender, logger: logger}
}

// Enqueue records the job and sends it. A send failure is recorded on the job, not returned.
func (q *Queue) Enqueue(ctx context.Context, name string, payload any) (uuid.UUID, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("json.Marshal: %w", err)
	}

	job, err := q.repo.InsertJob(ctx, name, body)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repo.InsertJob: %w", err)
	}

	logger := q.logger.With(zap.String("job_id", job.ID.String()), zap.String("job_name", name))

	if q.sender == nil {
		logger.Warn("no job transport configured, job left queued")
		return job.ID, nil
	}

	messageID, sendErr := q.sender.Send(ctx, job)
	if sendErr != nil {
		job.Status = domain.JobStatusFailed
		job.Error = sendErr.Error()
		logger.Error("failed to send job", zap.Error(sendErr))
	} else {
		job.Status = domain.JobStatusSent
		job.MessageID = messageID
	}

	if err := q.repo.UpdateJobStatus(ctx, job); err != nil {
		return job.ID, fmt.Errorf("repo.UpdateJobStatus: %w", err)
	}

	return job.ID, nil
}

func (q *Queue) Status(ctx context.Context, jobID uuid.UUID) (domain.Job, error) {
	job, err := q.repo.GetJob(ctx, jobID)
	if err != nil {
		return domain.Job{}, fmt.Errorf("repo.GetJob: %w", err)
	}

	return job, nil
}
