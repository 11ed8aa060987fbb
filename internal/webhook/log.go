package webhook

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultLogCapacity = 20

// Log retains the most recent deliveries in a fixed-capacity ring buffer.
// Once full, each append discards the oldest entry. Entirely in-process;
// contents are lost on restart.
type Log struct {
	mu      sync.Mutex
	entries []LogEntry
	head    int // index of the oldest entry
	size    int

	now func() time.Time
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &Log{
		entries: make([]LogEntry, capacity),
		now:     time.Now,
	}
}

// Append records e, stamping its ID and receive time.
func (l *Log) Append(e LogEntry) LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.ID = uuid.New()
	e.ReceivedAt = l.now().UTC()
	if e.Tags == nil {
		e.Tags = []string{}
	} else {
		e.Tags = slices.Clone(e.Tags)
	}

	if l.size < len(l.entries) {
		l.entries[(l.head+l.size)%len(l.entries)] = e
		l.size++
	} else {
		l.entries[l.head] = e
		l.head = (l.head + 1) % len(l.entries)
	}
	return e
}

// Entries returns a snapshot of all retained entries, oldest first.
func (l *Log) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, 0, l.size)
	for i := 0; i < l.size; i++ {
		out = append(out, l.entries[(l.head+i)%len(l.entries)])
	}
	return out
}
