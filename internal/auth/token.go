package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers missing, malformed, badly signed and expired tokens.
// Callers must not distinguish between those cases.
var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	AccountID uint `json:"account_id"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies the self-contained session tokens. Tokens
// carry only an account id and an expiry; there is no revocation before
// expiry.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenCodec(secret, issuer string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue creates a signed token bound to the account id, valid for the
// configured horizon from now.
func (c *TokenCodec) Issue(accountID uint) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", accountID),
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the asserted account id.
func (c *TokenCodec) Verify(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AccountID == 0 {
		return 0, ErrInvalidToken
	}

	return claims.AccountID, nil
}
