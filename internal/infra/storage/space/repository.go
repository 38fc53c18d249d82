package space

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetSpace-BookingService/pkg/psqlbuilder"
)

// Repository читает площадки. Площадки принадлежат другому сервису,
// здесь доступны только поля, нужные для бронирования.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "owner_id", "price_per_dog", "max_dogs_per_booking", "status").
		From("spaces").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Space
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.OwnerID,
		&s.PricePerDog,
		&s.MaxDogsPerBooking,
		&s.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan space: %v", ErrScanRow, err)
	}

	return &s, nil
}
