package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by API access tokens. Subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type TokenIssuer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{Secret: []byte(secret), Issuer: issuer, TTL: ttl}
}

func (t *TokenIssuer) Issue(userID, role string) (string, time.Time, error) {
	if len(t.Secret) == 0 {
		return "", time.Time{}, errors.New("token secret is not configured")
	}
	now := time.Now().UTC()
	exp := now.Add(t.TTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    t.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (t *TokenIssuer) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if t.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.Issuer))
	}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.Secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
