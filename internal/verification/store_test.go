package verification

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ttl = 10 * time.Minute

func TestIssue_CodeFormat(t *testing.T) {
	s := NewStore()
	code := s.Issue("a@b.com", "+5511999999999", "", "", ttl)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
}

func TestVerify_SingleUse(t *testing.T) {
	s := NewStore()
	code := s.Issue("a@b.com", "", "", "", ttl)

	assert.True(t, s.Verify("a@b.com", code))
	assert.False(t, s.Verify("a@b.com", code), "second use must fail")
}

func TestVerify_EmailNormalization(t *testing.T) {
	s := NewStore()
	code := s.Issue("  User@Example.COM ", "", "", "", ttl)
	assert.True(t, s.Verify("user@example.com", code))
}

func TestVerify_WrongCodeKeepsEntry(t *testing.T) {
	s := NewStore()
	code := s.Issue("a@b.com", "", "", "", ttl)

	assert.False(t, s.Verify("a@b.com", "000000x"))
	assert.True(t, s.Verify("a@b.com", code), "entry must survive a mismatch")
}

func TestVerify_UnknownEmail(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Verify("nobody@b.com", "123456"))
}

func TestVerify_ExpiredBehavesLikeMissing(t *testing.T) {
	s := NewStore()
	base := time.Now()
	s.now = func() time.Time { return base }
	code := s.Issue("a@b.com", "", "", "", ttl)

	s.now = func() time.Time { return base.Add(ttl + time.Second) }
	assert.False(t, s.Verify("a@b.com", code))

	// Entry is gone: retrying with the right code still fails.
	s.now = func() time.Time { return base }
	assert.False(t, s.Verify("a@b.com", code))
}

func TestIssue_ReissueInvalidatesPrevious(t *testing.T) {
	s := NewStore()
	first := s.Issue("a@b.com", "", "", "", ttl)
	second := s.Issue("a@b.com", "", "", "", ttl)

	if first != second {
		assert.False(t, s.Verify("a@b.com", first))
	}
	assert.True(t, s.Verify("a@b.com", second))
}

func TestPeek_DoesNotConsume(t *testing.T) {
	s := NewStore()
	code := s.Issue("a@b.com", "11988887777", "cpf", "123.456.789-09", ttl)

	phone, ok := s.PeekPhone("a@b.com")
	require.True(t, ok)
	assert.Equal(t, "11988887777", phone)

	docType, ok := s.PeekDocType("a@b.com")
	require.True(t, ok)
	assert.Equal(t, "CPF", docType)

	digits, ok := s.PeekDocDigits("a@b.com")
	require.True(t, ok)
	assert.Equal(t, "12345678909", digits)

	assert.True(t, s.Verify("a@b.com", code), "peeks must not consume the entry")
}

func TestVerify_ConcurrentSingleWinner(t *testing.T) {
	s := NewStore()
	code := s.Issue("a@b.com", "", "", "", ttl)

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan bool, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.Verify("a@b.com", code)
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent verify may succeed")
}
