package ports

import (
	"context"

	"rf-loans/internal/core/domain"
)

// AuditLog appends catalog change events. A failed append aborts the caller's unit of work.
type AuditLog interface {
	Append(ctx context.Context, event domain.AdminChangeEvent) error
}

// AuditQuery filters the audit listing. An empty Aggregate matches all kinds.
type AuditQuery struct {
	Aggregate domain.Aggregate
	Offset    int
	Limit     int
}

// AuditReader lists audit events newest first
type AuditReader interface {
	List(ctx context.Context, query AuditQuery) ([]domain.AdminChangeEvent, int64, error)
}
