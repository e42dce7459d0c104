// Package token implements the bearer token codec on HS256 JWTs.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tracknest/issuetracker/internal/core/domain"
)

const defaultTTL = 5 * time.Hour

// JWTCodec signs and verifies HS256 tokens. The subject claim carries the
// user id, the "roles" claim the granted role list.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWTCodec{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for the user with the configured validity
// window.
func (c *JWTCodec) Issue(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"roles": []string{user.Role},
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token and returns the identity it
// encodes. Any failure maps to domain.ErrUnauthorized.
func (c *JWTCodec) Verify(token string) (domain.Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Identity{}, fmt.Errorf("verify token: %w", domain.ErrUnauthorized)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Identity{}, fmt.Errorf("verify token: missing subject: %w", domain.ErrUnauthorized)
	}

	var roles []string
	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
	}

	return domain.NewIdentity(sub, roles), nil
}
