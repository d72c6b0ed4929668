package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Urjashee/response-formatter/api/responses"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	claimsKey  = "claims"
	RoleAdmin  = "admin"
	bearerPart = "Bearer "
)

var (
	ErrMissingHeader = errors.New("authorization header required")
	ErrBadFormat     = errors.New("invalid authorization format")
)

// Claims carried by access tokens
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Config struct {
	Secret []byte
	Issuer string
}

// IssueToken signs an HS256 token for subject
func IssueToken(cfg Config, subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates raw and returns its claims
func ParseToken(cfg Config, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingHeader
	}
	if !strings.HasPrefix(header, bearerPart) || len(header) == len(bearerPart) {
		return "", ErrBadFormat
	}
	return header[len(bearerPart):], nil
}

// Middleware rejects requests without a valid bearer token
func Middleware(log *slog.Logger, cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			_ = responses.Unauthorized(responses.Gin(c), "Authorization failed: "+err.Error()+".", nil)
			c.Abort()
			return
		}

		claims, err := ParseToken(cfg, raw)
		if err != nil {
			log.InfoContext(c.Request.Context(), "rejected bearer token", "error", err)
			_ = responses.Unauthorized(responses.Gin(c), "", nil)
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole lets through callers whose token carries role, or admin
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			_ = responses.Unauthorized(responses.Gin(c), "", nil)
			c.Abort()
			return
		}
		if claims.Role != role && claims.Role != RoleAdmin {
			_ = responses.Forbidden(responses.Gin(c), "", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Middleware
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
