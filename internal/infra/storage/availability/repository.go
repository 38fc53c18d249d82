package availability

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

var columns = []string{
	"id",
	"space_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий шаблонов доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый шаблон
func (r *Repository) Create(ctx context.Context, p *domain.AvailabilityPattern) (*domain.AvailabilityPattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availabilities").
		Columns("space_id", "day_of_week", "start_time", "end_time", "is_active").
		Values(p.SpaceID, p.DayOfWeek, p.StartTime, p.EndTime, p.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetByID получает шаблон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityPattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("availabilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPattern(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatternNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan pattern: %v", ErrScanRow, err)
	}

	return p, nil
}

// GetBySpace получает шаблоны площадки, отсортированные по дню недели и времени начала
func (r *Repository) GetBySpace(ctx context.Context, spaceID int64, filter domain.PatternsFilter) ([]*domain.AvailabilityPattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("availabilities").
		Where(squirrel.Eq{"space_id": spaceID}).
		OrderBy("day_of_week ASC", "start_time ASC")

	if filter.ActiveOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.DayOfWeek != nil {
		builder = builder.Where(squirrel.Eq{"day_of_week": *filter.DayOfWeek})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpace - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpace - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	patterns := make([]*domain.AvailabilityPattern, 0)
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBySpace - scan row: %v", ErrScanRow, err)
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySpace - rows error: %v", ErrScanRow, err)
	}

	return patterns, nil
}

// Update сохраняет день, время и флаг активности шаблона
func (r *Repository) Update(ctx context.Context, p *domain.AvailabilityPattern) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availabilities").
		Set("day_of_week", p.DayOfWeek).
		Set("start_time", p.StartTime).
		Set("end_time", p.EndTime).
		Set("is_active", p.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPatternNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// Deactivate снимает флаг активности, запись не удаляется
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availabilities").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPatternNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPattern(row scanner) (*domain.AvailabilityPattern, error) {
	var p domain.AvailabilityPattern
	if err := row.Scan(
		&p.ID,
		&p.SpaceID,
		&p.DayOfWeek,
		&p.StartTime,
		&p.EndTime,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
