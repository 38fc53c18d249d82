package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetSpace-BookingService/pkg/pgerr"
	"github.com/m04kA/PetSpace-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

var columns = []string{
	"id",
	"space_id",
	"renter_id",
	"cancelled_by",
	"booking_date",
	"start_time",
	"end_time",
	"duration_hours",
	"status",
	"total_price",
	"price_per_dog_per_hour",
	"renter_message",
	"host_response_message",
	"cancellation_reason",
	"cancelled_at",
	"refund_eligible",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"space_id",
			"renter_id",
			"booking_date",
			"start_time",
			"end_time",
			"duration_hours",
			"status",
			"total_price",
			"price_per_dog_per_hour",
			"renter_message",
		).
		Values(
			booking.SpaceID,
			booking.RenterID,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.DurationHours,
			booking.Status,
			booking.TotalPrice,
			booking.PricePerDogPerHour,
			booking.RenterMessage,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if pgerr.IsConcurrencyConflict(err) {
			return nil, fmt.Errorf("%w: Create: %v", ErrConcurrentWrite, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку до конца перехода статуса
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByRenterID получает список бронирований арендатора.
// Опционально фильтрует по статусу
func (r *Repository) GetByRenterID(ctx context.Context, renterID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"renter_id": renterID}).
		OrderBy("booking_date DESC", "start_time DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRenterID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRenterID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBySpaceWithFilter получает бронирования площадки с фильтрацией
// по периоду, статусу и включению неактивных (denied, cancelled)
func (r *Repository) GetBySpaceWithFilter(ctx context.Context, spaceID int64, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"space_id": spaceID})

	if filter.RenterID != nil {
		builder = builder.Where(squirrel.Eq{"renter_id": *filter.RenterID})
	}
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"booking_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"booking_date": domain.DateOnly(*filter.EndDate)})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		builder = builder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	builder = builder.OrderBy("booking_date ASC", "start_time ASC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpaceWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpaceWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetOverlapping получает активные бронирования площадки на дату, пересекающиеся
// с полуоткрытым интервалом [start, end). Внутри транзакции строки блокируются.
func (r *Repository) GetOverlapping(ctx context.Context, spaceID int64, date time.Time, start, end types.TimeString) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"space_id": spaceID}).
		Where(squirrel.Eq{"booking_date": domain.DateOnly(date)}).
		Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsConcurrencyConflict(err) {
			return nil, fmt.Errorf("%w: GetOverlapping: %v", ErrConcurrentWrite, err)
		}
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetExpiredApproved получает подтверждённые бронирования, закончившиеся до now.
// spaceID == nil означает все площадки.
func (r *Repository) GetExpiredApproved(ctx context.Context, spaceID *int64, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := expiredApprovedQuery(spaceID, now).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredApproved - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredApproved - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// expiredApprovedQuery подтверждённые бронирования, закончившиеся строго раньше now.
// Время сравнивается с точностью до секунды, как и EndDatetime().Before(now).
func expiredApprovedQuery(spaceID *int64, now time.Time) squirrel.SelectBuilder {
	today := domain.DateOnly(now)
	nowTime := now.Format("15:04:05")

	builder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusApproved}).
		Where(squirrel.Or{
			squirrel.Lt{"booking_date": today},
			squirrel.And{
				squirrel.Eq{"booking_date": today},
				squirrel.Lt{"end_time": nowTime},
			},
		}).
		OrderBy("booking_date ASC", "end_time ASC")

	if spaceID != nil {
		builder = builder.Where(squirrel.Eq{"space_id": *spaceID})
	}
	return builder
}

// LockSpace берёт транзакционную advisory-блокировку площадки.
// Блокировка снимается при завершении транзакции.
func (r *Repository) LockSpace(ctx context.Context, spaceID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", spaceID); err != nil {
		if pgerr.IsConcurrencyConflict(err) {
			return fmt.Errorf("%w: LockSpace: %v", ErrConcurrentWrite, err)
		}
		return fmt.Errorf("%w: LockSpace - execute: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateStatus сохраняет результат перехода статуса.
// Запись обновляется только если её текущий статус равен from.
func (r *Repository) UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", booking.Status).
		Set("host_response_message", booking.HostResponseMessage).
		Set("cancelled_by", booking.CancelledBy).
		Set("cancellation_reason", booking.CancellationReason).
		Set("cancelled_at", booking.CancelledAt).
		Set("refund_eligible", booking.RefundEligible).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

// UpdateTotalPrice сохраняет пересчитанную стоимость
func (r *Repository) UpdateTotalPrice(ctx context.Context, id int64, totalPrice float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("total_price", totalPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateTotalPrice - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateTotalPrice - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateTotalPrice - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row scanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.SpaceID,
		&b.RenterID,
		&b.CancelledBy,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.DurationHours,
		&b.Status,
		&b.TotalPrice,
		&b.PricePerDogPerHour,
		&b.RenterMessage,
		&b.HostResponseMessage,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.RefundEligible,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.BookingDate = domain.DateOnly(b.BookingDate)
	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
