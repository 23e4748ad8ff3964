package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 tokens issued by the identity provider.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses raw and returns the principal it names. The name claim wins
// over the subject when both are present.
func (v *Verifier) Verify(raw string) (Principal, error) {
	c := &claims{}

	_, err := jwt.ParseWithClaims(raw, c, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Anonymous, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	name := c.Name
	if name == "" {
		name = c.Subject
	}

	if name == "" {
		return Anonymous, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}

	return Principal{Name: name, Roles: c.Roles}, nil
}

// IssueToken signs a token for p. The service never issues tokens on its own;
// this exists for local development and the client tests.
func IssueToken(secret string, p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Name:  p.Name,
		Roles: p.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	return token.SignedString([]byte(secret))
}
