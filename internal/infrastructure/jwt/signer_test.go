package jwtinfra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndVerify(t *testing.T) {
	s := NewSigner(testSecret, time.Hour)
	token, err := s.Issue("user@example.com")
	require.NoError(t, err)

	assert.True(t, s.Verify(token, "user@example.com"))
	assert.False(t, s.Verify(token, "other@example.com"))
}

func TestVerify_Expired(t *testing.T) {
	s := NewSigner(testSecret, time.Hour)
	base := time.Now()
	s.now = func() time.Time { return base }

	token, err := s.Issue("user@example.com")
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(time.Hour + time.Minute) }
	assert.False(t, s.Verify(token, "user@example.com"))
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewSigner(testSecret, time.Hour)
	verifier := NewSigner("another-secret-another-secret-ab", time.Hour)

	token, err := issuer.Issue("user@example.com")
	require.NoError(t, err)
	assert.False(t, verifier.Verify(token, "user@example.com"))
}

func TestVerify_Garbage(t *testing.T) {
	s := NewSigner(testSecret, time.Hour)
	assert.False(t, s.Verify("not-a-token", "user@example.com"))
	assert.False(t, s.Verify("", "user@example.com"))
}

func TestExtractSubject(t *testing.T) {
	s := NewSigner(testSecret, time.Hour)
	token, err := s.Issue("user@example.com")
	require.NoError(t, err)

	subject, err := s.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)

	_, err = s.ExtractSubject("garbage")
	assert.Error(t, err)
}

func TestExtractExpiry(t *testing.T) {
	s := NewSigner(testSecret, time.Hour)
	base := time.Now().Truncate(time.Second)
	s.now = func() time.Time { return base }

	token, err := s.Issue("user@example.com")
	require.NoError(t, err)

	exp, err := s.ExtractExpiry(token)
	require.NoError(t, err)
	assert.Equal(t, base.Add(time.Hour).Unix(), exp.Unix())
}
