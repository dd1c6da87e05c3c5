package repositories

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"rf-loans/internal/core/ports"
)

// UnitOfWork runs each scope in one gorm transaction
type UnitOfWork struct {
	db        *gorm.DB
	txOptions *sql.TxOptions
}

// UnitOfWorkOption configures a UnitOfWork
type UnitOfWorkOption func(*UnitOfWork)

// WithIsolation overrides the transaction isolation level
func WithIsolation(level sql.IsolationLevel) UnitOfWorkOption {
	return func(u *UnitOfWork) {
		u.txOptions = &sql.TxOptions{Isolation: level}
	}
}

// WithDriverDefaultIsolation begins transactions without explicit options
func WithDriverDefaultIsolation() UnitOfWorkOption {
	return func(u *UnitOfWork) {
		u.txOptions = nil
	}
}

// NewUnitOfWork creates a new unit of work.
// MySQL and PostgreSQL transactions run serializable; SQLite keeps its driver default
// since it already serialises writers and rejects other isolation levels.
func NewUnitOfWork(db *gorm.DB, opts ...UnitOfWorkOption) *UnitOfWork {
	u := &UnitOfWork{db: db}
	if db.Dialector.Name() != "sqlite" {
		u.txOptions = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Do runs fn inside a transaction. A nil return commits; an error or panic rolls back.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	var opts []*sql.TxOptions
	if u.txOptions != nil {
		opts = append(opts, u.txOptions)
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewStore(tx))
	}, opts...)
	return translateError(err)
}
