package activity

import (
	"sync"
	"time"
)

// Entry is one recorded task lifecycle event.
type Entry struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	TaskID     int       `json:"task_id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Log keeps the most recent entries, oldest first, dropping the oldest once
// capacity is reached.
type Log struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	dropped  int
}

// NewLog creates a log holding at most capacity entries.
func NewLog(capacity int) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
	}
}

// Append records an entry.
func (l *Log) Append(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
		l.dropped++
	}
	l.entries = append(l.entries, e)
}

// Recent returns up to limit of the newest entries, oldest first. A
// non-positive limit returns everything.
func (l *Log) Recent(limit int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	start := 0
	if limit > 0 && limit < len(l.entries) {
		start = len(l.entries) - limit
	}
	result := make([]Entry, len(l.entries)-start)
	copy(result, l.entries[start:])
	return result
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Dropped returns how many entries were evicted to respect capacity.
func (l *Log) Dropped() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dropped
}
