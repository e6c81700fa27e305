package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/orderlycore/orderlycore/internal/domain/logger"
	"github.com/orderlycore/orderlycore/orderly/config"
)

// BaseRepository provides common repository functionality
type BaseRepository struct {
	db             *bun.DB
	defaultTimeout time.Duration
}

func NewBaseRepository(db *bun.DB) *BaseRepository {
	return &BaseRepository{
		db:             db,
		defaultTimeout: config.DefaultQueryTimeout,
	}
}

// RepositoryError represents a repository-level error
type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s for %s: %v", re.Operation, re.Entity, re.Err)
}

func (re *RepositoryError) Unwrap() error {
	return re.Err
}

// NotFoundError represents an entity not found error
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", nfe.Entity, nfe.ID)
}

func (br *BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.defaultTimeout)
}

// HandleError standardizes error handling across repositories
func (br *BaseRepository) HandleError(operation, entity string, id interface{}, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return &RepositoryError{
		Operation: operation,
		Entity:    entity,
		Err:       err,
	}
}

// exec runs a write with the default timeout and logs it.
func (br *BaseRepository) exec(ctx context.Context, entity, operation, guildID string, query func(context.Context) (sql.Result, error)) error {
	ctx, cancel := br.WithTimeout(ctx)
	defer cancel()

	ql := logger.NewQueryLogger(entity, operation, guildID)
	res, err := query(ctx)
	var affected int64
	if err == nil {
		affected, _ = res.RowsAffected()
	}
	ql.Log(err, affected)
	return br.HandleError(operation, entity, guildID, err)
}

// read runs a select with the default timeout. sql.ErrNoRows becomes a
// NotFoundError so callers can fall back to defaults.
func (br *BaseRepository) read(ctx context.Context, entity, operation, guildID string, query func(context.Context) error) error {
	ctx, cancel := br.WithTimeout(ctx)
	defer cancel()

	ql := logger.NewQueryLogger(entity, operation, guildID)
	err := query(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		ql.Log(nil, 0)
	} else {
		ql.Log(err, 1)
	}
	return br.HandleError(operation, entity, guildID, err)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
