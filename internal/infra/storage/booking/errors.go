package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStatusChanged возвращается, когда статус бронирования изменился параллельным запросом
	ErrStatusChanged = errors.New("booking.repository: booking status changed concurrently")

	// ErrNoTransaction возвращается, когда операция требует активной транзакции
	ErrNoTransaction = errors.New("booking.repository: operation requires a transaction")

	// ErrConcurrentWrite возвращается при конфликте сериализации или взаимной блокировке
	ErrConcurrentWrite = errors.New("booking.repository: concurrent write conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
