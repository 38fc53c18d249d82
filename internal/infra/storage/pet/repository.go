package pet

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

// Repository читает питомцев
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает питомца по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "owner_id", "name").
		From("pets").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Pet
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.OwnerID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan pet: %v", ErrScanRow, err)
	}

	return &p, nil
}

// GetByIDs получает питомцев по списку ID. Отсутствующие ID просто не попадают в результат.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Pet, error) {
	if len(ids) == 0 {
		return []*domain.Pet{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "owner_id", "name").
		From("pets").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	pets := make([]*domain.Pet, 0, len(ids))
	for rows.Next() {
		var p domain.Pet
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name); err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		pets = append(pets, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return pets, nil
}
