package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые сервис обрабатывает отдельно
const (
	CodeUniqueViolation      = pq.ErrorCode("23505")
	CodeForeignKeyViolation  = pq.ErrorCode("23503")
	CodeCheckViolation       = pq.ErrorCode("23514")
	CodeExclusionViolation   = pq.ErrorCode("23P01")
	CodeSerializationFailure = pq.ErrorCode("40001")
	CodeDeadlockDetected     = pq.ErrorCode("40P01")
)

// Code возвращает код ошибки Postgres или пустую строку
func Code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

// IsCheckViolation нарушение CHECK ограничения
func IsCheckViolation(err error) bool {
	return Code(err) == CodeCheckViolation
}

// IsConcurrencyConflict ошибки, означающие проигрыш в гонке параллельных транзакций:
// сбой сериализации, дедлок или нарушение exclusion constraint
func IsConcurrencyConflict(err error) bool {
	switch Code(err) {
	case CodeSerializationFailure, CodeDeadlockDetected, CodeExclusionViolation:
		return true
	default:
		return false
	}
}
