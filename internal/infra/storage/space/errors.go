package space

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда площадка не найдена
	ErrSpaceNotFound = errors.New("space.repository: space not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("space.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("space.repository: failed to scan row")
)
