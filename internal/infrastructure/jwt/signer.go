package jwtinfra

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidClaims = errors.New("invalid token claims")

// Signer issues and verifies HS256 bearer tokens bound to a subject email.
// The clock is injectable so expiry behaviour can be tested without
// sleeping; production code uses time.Now.
type Signer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewSigner(secret string, expiry time.Duration) *Signer {
	return &Signer{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Issue builds a signed token for subject with issued-at = now and
// expiry = now + configured TTL.
func (s *Signer) Issue(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify reports whether tokenStr carries a valid signature, an unexpired
// expiry and the expected subject. It fails closed: any parse or signature
// problem yields false, never an error.
func (s *Signer) Verify(tokenStr, expectedSubject string) bool {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}

// ExtractSubject returns the subject claim. Parsing verifies the signature
// and expiry as well; there is no way to read claims from an untrusted token.
func (s *Signer) ExtractSubject(tokenStr string) (string, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractExpiry returns the expiry instant embedded in the token.
func (s *Signer) ExtractExpiry(tokenStr string) (time.Time, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errInvalidClaims
	}
	return claims.ExpiresAt.Time, nil
}

// parse checks structure and signature before any claim is trusted, and
// rejects tokens signed with anything but HMAC.
func (s *Signer) parse(tokenStr string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, errInvalidClaims
	}
	return claims, nil
}
