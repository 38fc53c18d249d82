package clock

import (
	"sync"
	"time"
)

// Clock источник текущего времени.
// Время возвращается как настенное время в заданной зоне, перенесённое в UTC:
// 09:00 по Москве становится 09:00 UTC. Так его можно напрямую сравнивать
// с датой и временем бронирования, которые хранятся без часового пояса.
type Clock interface {
	Now() time.Time
}

// Real системные часы
type Real struct {
	loc *time.Location
}

// NewReal создает часы для зоны loc (nil означает UTC)
func NewReal(loc *time.Location) *Real {
	if loc == nil {
		loc = time.UTC
	}
	return &Real{loc: loc}
}

// Now текущее настенное время
func (c *Real) Now() time.Time {
	return WallClock(time.Now().In(c.loc))
}

// WallClock переносит показания часов t в UTC без сдвига
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Fixed часы для тестов
type Fixed struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixed создает часы, всегда возвращающие t
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

func (c *Fixed) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set переставляет часы
func (c *Fixed) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance сдвигает часы на d
func (c *Fixed) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
