package auth

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultTokenTTL is used when Issue is called with a non-positive ttl.
const DefaultTokenTTL = 30 * time.Minute

// ErrInvalidToken covers every decode failure: bad signature, unparseable
// structure, missing or non-numeric subject, and expiry in the past. The
// conditions are logged server-side but never distinguished for callers,
// so a client cannot tell a forged token from an expired one.
var ErrInvalidToken = errors.New("invalid token")

// JWTService issues and verifies HS256 bearer tokens. The signing secret
// is injected at construction and read-only afterwards, so a single
// instance is safe for concurrent use.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a token codec signing with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// Issue signs a token asserting the user id as subject with an absolute
// expiry of now+ttl. The token carries a jti claim for log correlation.
func (s *JWTService) Issue(userID uint, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry and extracts the subject user id.
func (s *JWTService) Decode(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		log.Printf("token rejected: %v", err)
		return 0, ErrInvalidToken
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		log.Printf("token rejected: bad subject %q (jti=%s)", claims.Subject, claims.ID)
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}
