package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
var ErrTimeOverflow = errors.New("time string overflow")

const (
	layout        = "15:04"
	minutesPerDay = 24 * 60
)

// TimeString время суток в формате "HH:MM" без даты.
// Пустая строка означает "не указано".
type TimeString string

// NewTimeString создает TimeString из time.Time (берутся только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layout))
}

// NewTimeStringFromString парсит строку "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04:05") {
		s = s[:len(layout)]
	}
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке.
// Используется в тестах и константах.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// FromMinutes создает TimeString из количества минут с начала суток
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что время не указано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат "HH:MM"
func (t TimeString) Validate() error {
	s := string(t)
	if len(s) != len(layout) || s[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return nil
}

// Minutes возвращает количество минут с начала суток, -1 для некорректного значения
func (t TimeString) Minutes() int {
	if t.Validate() != nil {
		return -1
	}
	h, _ := strconv.Atoi(string(t)[:2])
	m, _ := strconv.Atoi(string(t)[3:])
	return h*60 + m
}

// Duration возвращает смещение от начала суток
func (t TimeString) Duration() time.Duration {
	return time.Duration(t.Minutes()) * time.Minute
}

// AddMinutes прибавляет минуты; результат должен оставаться в пределах суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return FromMinutes(t.Minutes() + minutes)
}

// IsBefore строго раньше
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter строго позже
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal совпадает ли время
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

// MinutesUntil возвращает разницу other - t в минутах
func (t TimeString) MinutesUntil(other TimeString) int {
	return other.Minutes() - t.Minutes()
}

// Format12h выводит время в 12-часовом формате, например "09:00 AM"
func (t TimeString) Format12h() string {
	parsed, err := time.Parse(layout, string(t))
	if err != nil {
		return string(t)
	}
	return parsed.Format("03:04 PM")
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t) + ":00", nil
}

// Scan реализует sql.Scanner. lib/pq отдает колонку time как time.Time или строку.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}
