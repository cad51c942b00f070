package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/backoffice/internal/db"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/port"
	"github.com/samber/lo"
)

type jobRepository struct {
	q *db.Queries
}

func NewJob(pool *pgxpool.Pool) port.JobRepository {
	return &jobRepository{q: db.New(pool)}
}

func (r *jobRepository) InsertJob(ctx context.Context, name string, payload json.RawMessage) (domain.Job, error) {
	if name == "" {
		return domain.Job{}, errors.New("name is empty")
	}

	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}

	row, err := r.q.InsertJob(ctx, db.InsertJobParams{
		Name:    name,
		Payload: payload,
	})
	if err != nil {
		return domain.Job{}, fmt.Errorf("q.InsertJob: %w", err)
	}

	status, err := domain.ToJobStatus(row.Status)
	if err != nil {
		return domain.Job{}, fmt.Errorf("domain.ToJobStatus[%s]: %w", row.Status, err)
	}

	return domain.Job{
		ID:        row.ID,
		Name:      name,
		Payload:   payload,
		Status:    status,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *jobRepository) GetJob(ctx context.Context, jobID uuid.UUID) (domain.Job, error) {
	row, err := r.q.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Job{}, fmt.Errorf("q.GetJob: %w", domain.ErrJobNotFound)
		}
		return domain.Job{}, fmt.Errorf("q.GetJob: %w", err)
	}

	status, err := domain.ToJobStatus(row.Status)
	if err != nil {
		return domain.Job{}, fmt.Errorf("domain.ToJobStatus[%s]: %w", row.Status, err)
	}

	return domain.Job{
		ID:        row.ID,
		Name:      row.Name,
		Payload:   row.Payload,
		Status:    status,
		MessageID: lo.FromPtr(row.MessageID),
		Error:     lo.FromPtr(row.Error),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *jobRepository) UpdateJobStatus(ctx context.Context, job domain.Job) error {
	if job.ID == uuid.Nil {
		return errors.New("jobID is empty")
	}

	cmdTag, err := r.q.UpdateJobStatus(ctx, db.UpdateJobStatusParams{
		ID:        job.ID,
		Status:    string(job.Status),
		MessageID: lo.EmptyableToPtr(job.MessageID),
		Error:     lo.EmptyableToPtr(job.Error),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateJobStatus: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateJobStatus: %w", domain.ErrJobNotFound)
	}

	return nil
}
