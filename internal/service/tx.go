package service

import (
	"context"
	"fmt"

	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
)

// withinTx runs fn in one unit of work. Client errors pass through; any other
// failure rolls back and surfaces as model.ErrOperationFailed.
func withinTx[T any](ctx context.Context, tr model.Transactor, log *logger.Logger, op string, fn func(uow model.UnitOfWork) (T, error)) (T, error) {
	var zero T

	uow, err := tr.Begin(ctx)
	if err != nil {
		log.Error(op+": failed to begin transaction", "error", err.Error())
		return zero, fmt.Errorf("%s: %w", op, model.ErrOperationFailed)
	}
	defer func() {
		if rbErr := uow.Rollback(ctx); rbErr != nil {
			log.Error(op+": failed to rollback transaction", "error", rbErr.Error())
		}
	}()

	res, err := fn(uow)
	if err != nil {
		if model.IsClientError(err) {
			return zero, err
		}
		log.Error(op+": operation failed", "error", err.Error())
		return zero, fmt.Errorf("%s: %w", op, model.ErrOperationFailed)
	}

	if err := uow.Commit(ctx); err != nil {
		log.Error(op+": failed to commit transaction", "error", err.Error())
		return zero, fmt.Errorf("%s: %w", op, model.ErrOperationFailed)
	}
	return res, nil
}
