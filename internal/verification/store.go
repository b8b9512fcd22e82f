// Package verification holds short-lived, single-use registration codes.
// Entries live only in process memory: codes expire within minutes, so
// losing them on restart simply forces the user to request a new one.
package verification

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

type entry struct {
	code      string
	expiresAt time.Time
	phone     string
	docType   string // normalized upper-case, "" when not supplied
	docDigits string // digits only, "" when not supplied
}

// Store keeps at most one pending code per normalized email. All methods
// are safe for concurrent use; a single mutex guards the map, every
// operation is O(1) and never blocks on I/O.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Issue generates a uniformly random six-digit code for email, replacing
// any code previously issued for it, and returns the code. Delivering the
// code is the caller's responsibility.
func (s *Store) Issue(email, phoneNumber, docType, docDigits string, ttl time.Duration) string {
	code := fmt.Sprintf("%06d", rand.IntN(1_000_000))
	e := entry{
		code:      code,
		expiresAt: s.now().Add(ttl),
		phone:     phoneNumber,
		docType:   strings.ToUpper(strings.TrimSpace(docType)),
		docDigits: digitsOnly(docDigits),
	}
	key := normalizeEmail(email)
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return code
}

// Verify consumes the pending code for email when submitted matches it.
// An expired entry is removed and reported exactly like a missing one, so
// callers cannot distinguish "expired" from "never requested". On a
// mismatch the entry stays, leaving room to retry within the TTL.
func (s *Store) Verify(email, submitted string) bool {
	key := normalizeEmail(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return false
	}
	if !e.expiresAt.After(s.now()) {
		delete(s.entries, key)
		return false
	}
	if e.code != submitted {
		return false
	}
	delete(s.entries, key)
	return true
}

// PeekPhone returns the phone supplied when the code was requested.
// It must be read before Verify, which removes the entry on success.
func (s *Store) PeekPhone(email string) (string, bool) {
	e, ok := s.peek(email)
	return e.phone, ok
}

// PeekDocType returns the declared tax-id type, "" when none was supplied.
func (s *Store) PeekDocType(email string) (string, bool) {
	e, ok := s.peek(email)
	return e.docType, ok
}

// PeekDocDigits returns the declared tax-id digits, "" when none were supplied.
func (s *Store) PeekDocDigits(email string) (string, bool) {
	e, ok := s.peek(email)
	return e.docDigits, ok
}

func (s *Store) peek(email string) (entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[normalizeEmail(email)]
	return e, ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
