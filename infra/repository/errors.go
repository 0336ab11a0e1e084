package repository

import (
	"errors"
	"fmt"

	"github.com/amirasaad/commission/pkg/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM and driver errors to domain errors.
// This keeps infrastructure concerns (database errors) within the
// infrastructure layer. Unmapped errors are wrapped as domain.ErrPersistence
// so callers can distinguish retryable store failures from lifecycle errors.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return domain.ErrConflict
	}

	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}
