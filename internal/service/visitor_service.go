package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stemsi/portfolio-backend/internal/config"
)

// TokenTypeVisitor marks tokens issued to anonymous site visitors.
const TokenTypeVisitor = "visitor"

// Claims extends JWT standard claims with the visitor ID.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
	VisitorID string `json:"visitor_id"`
}

// VisitorService issues and validates anonymous visitor tokens. The token
// only identifies a browser so its preferences can be found again.
type VisitorService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewVisitorService(cfg *config.Config) *VisitorService {
	return &VisitorService{
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.VisitorExpiry,
		now:    time.Now,
	}
}

// IssueToken creates a token for a new visitor ID.
func (s *VisitorService) IssueToken() (token, visitorID string, expiresAt time.Time, err error) {
	visitorID = uuid.New().String()
	now := s.now()
	expiresAt = now.Add(s.expiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   visitorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenType: TokenTypeVisitor,
		VisitorID: visitorID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, visitorID, expiresAt, nil
}

// ValidateToken parses and validates a visitor JWT, returning the claims.
func (s *VisitorService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.TokenType != TokenTypeVisitor {
		return nil, errors.New("not a visitor token")
	}
	if _, err := uuid.Parse(claims.VisitorID); err != nil {
		return nil, fmt.Errorf("invalid visitor id: %w", err)
	}

	return claims, nil
}
