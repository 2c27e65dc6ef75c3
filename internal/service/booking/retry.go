package booking

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Коды ошибок PostgreSQL, считающиеся временными
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgConnectionClass      = "08"
)

// isTransientStoreError классифицирует ошибку хранилища как временную
// Временные ошибки повторяются, ошибки состояния и вызывающего - нет
func isTransientStoreError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == pgSerializationFailure ||
			code == pgDeadlockDetected ||
			strings.HasPrefix(code, pgConnectionClass)
	}

	return false
}

// withRetry выполняет шаг записи с ограниченным числом повторов и backoff
// Повторяются только временные сбои хранилища; переход уже вычислен и
// детерминирован - под per-slot блокировкой повтор читает то же состояние
func (s *Service) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error

	for attempt := 1; attempt <= domain.StoreRetryAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isTransientStoreError(err) {
			return err
		}

		s.logger.Warn("%s: transient store failure (attempt %d/%d): %v",
			op, attempt, domain.StoreRetryAttempts, err)

		if attempt == domain.StoreRetryAttempts {
			break
		}

		backoff := time.Duration(attempt*domain.StoreRetryBackoffMS) * time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("%w: %s: %v", ErrTransientStore, op, err)
}
