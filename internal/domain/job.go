package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

// remember to add new statuses to the validJobStatuses map
const (
	JobStatusQueued JobStatus = "queued"
	JobStatusSent   JobStatus = "sent"
	JobStatusFailed JobStatus = "failed"
)

var validJobStatuses = map[JobStatus]struct{}{
	JobStatusQueued: {},
	JobStatusSent:   {},
	JobStatusFailed: {},
}

func ToJobStatus(s string) (JobStatus, error) {
	status := JobStatus(s)
	if _, ok := validJobStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid job status")
}

// Job is the locally recorded state of a task handed to the queue.
type Job struct {
	ID        uuid.UUID
	Name      string
	Payload   json.RawMessage
	Status    JobStatus
	MessageID string
	Error     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
