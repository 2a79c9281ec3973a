// Package token issues and verifies the bearer credentials returned by
// login. Tokens are HS256 signed and expire after a day.
package token

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const TTL = 24 * time.Hour

var (
	ErrInvalid = errors.New("invalid token")
	ErrExpired = errors.New("token expired")
)

// Identity is the public payload carried by a token. The line id is not
// part of it: handlers resolve that from the store on every request.
type Identity struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

type claims struct {
	Identity
	jwt.RegisteredClaims
}

type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign issues a token for the identity, valid for TTL from the given
// instant.
func (s *Signer) Sign(id Identity, now time.Time) (string, error) {
	c := claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify parses and validates a token and returns the identity it carries.
func (s *Signer) Verify(tokenStr string) (Identity, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpired
		}
		return Identity{}, ErrInvalid
	}
	if !tok.Valid || c.Email == "" {
		return Identity{}, ErrInvalid
	}
	return c.Identity, nil
}
