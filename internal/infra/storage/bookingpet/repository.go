package bookingpet

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetSpace-BookingService/pkg/pgerr"
	"github.com/m04kA/PetSpace-BookingService/pkg/psqlbuilder"
)

// Repository связи бронирований с питомцами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create привязывает питомца к бронированию.
// Уникальный индекс (booking_id, pet_id) превращается в ErrDuplicate.
func (r *Repository) Create(ctx context.Context, bookingID, petID int64) (*domain.BookingPet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_pets").
		Columns("booking_id", "pet_id").
		Values(bookingID, petID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	bp := &domain.BookingPet{BookingID: bookingID, PetID: petID}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&bp.ID, &bp.CreatedAt); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return bp, nil
}

// Delete отвязывает питомца от бронирования
func (r *Repository) Delete(ctx context.Context, bookingID, petID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_pets").
		Where(squirrel.Eq{"booking_id": bookingID, "pet_id": petID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Exists проверяет, привязан ли питомец к бронированию
func (r *Repository) Exists(ctx context.Context, bookingID, petID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("booking_pets").
		Where(squirrel.Eq{"booking_id": bookingID, "pet_id": petID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: Exists - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// GetPetIDsByBooking возвращает ID питомцев бронирования
func (r *Repository) GetPetIDsByBooking(ctx context.Context, bookingID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("pet_id").
		From("booking_pets").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("pet_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPetIDsByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPetIDsByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	petIDs := make([]int64, 0)
	for rows.Next() {
		var petID int64
		if err := rows.Scan(&petID); err != nil {
			return nil, fmt.Errorf("%w: GetPetIDsByBooking - scan pet_id: %v", ErrScanRow, err)
		}
		petIDs = append(petIDs, petID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPetIDsByBooking - rows error: %v", ErrScanRow, err)
	}

	return petIDs, nil
}

// CountByBooking возвращает количество питомцев в бронировании
func (r *Repository) CountByBooking(ctx context.Context, bookingID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("booking_pets").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByBooking - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByBooking - scan: %v", ErrScanRow, err)
	}

	return count, nil
}
