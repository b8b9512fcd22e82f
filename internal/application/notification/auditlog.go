package notification

import (
	"sync"
	"time"

	"github.com/ceidigital/backoffice/internal/domain"
)

// DefaultAuditCapacity bounds each channel's audit log.
const DefaultAuditCapacity = 200

// AuditLog is a bounded FIFO of outbound message copies for one channel.
// When full, appending evicts the oldest record. A single mutex guards the
// slice; operations are short and never perform I/O while holding it.
type AuditLog struct {
	mu      sync.Mutex
	records []domain.MessageRecord
	cap     int
	now     func() time.Time
}

func NewAuditLog(capacity int) *AuditLog {
	if capacity <= 0 {
		capacity = DefaultAuditCapacity
	}
	return &AuditLog{
		records: make([]domain.MessageRecord, 0, capacity),
		cap:     capacity,
		now:     time.Now,
	}
}

// Append records a message copy, evicting the oldest record when full.
func (l *AuditLog) Append(to, body string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.records) >= l.cap {
		copy(l.records, l.records[1:])
		l.records = l.records[:len(l.records)-1]
	}
	l.records = append(l.records, domain.MessageRecord{To: to, Body: body, CreatedAt: l.now()})
}

// List returns a copy of the records, oldest first.
func (l *AuditLog) List() []domain.MessageRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.MessageRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len reports the current number of records.
func (l *AuditLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Clear removes all records.
func (l *AuditLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = l.records[:0]
}
