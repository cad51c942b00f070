// Package service coordinates repositories inside transactions and emits side effects after commit.
package service

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const TracerName = "backoffice"

// JobQueue is the narrow view of jobs.Queue the services need.
type JobQueue interface {
	Enqueue(ctx context.Context, name string, payload any) (uuid.UUID, error)
}

// FeatureFlags is the narrow view of settings.Store the services need.
type FeatureFlags interface {
	Bool(key string, fallback bool) bool
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
