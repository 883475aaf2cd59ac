package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity asserted by the platform layer: the
// acting user and the workspaces it may manage forms in. Whether the
// actor may manage the destination channel itself stays with the
// platform.
type Claims struct {
	ActorID    string   `json:"sub"`
	Workspaces []string `json:"workspaces,omitempty"`
	jwt.RegisteredClaims
}

// AllowsWorkspace reports whether the token grants access to the
// workspace. A token without a workspace list grants all of them.
func (c *Claims) AllowsWorkspace(workspace string) bool {
	if len(c.Workspaces) == 0 {
		return true
	}
	for _, ws := range c.Workspaces {
		if ws == workspace {
			return true
		}
	}
	return false
}

// JWTManager signs and validates HS256 service tokens.
type JWTManager struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewJWTManager creates a new JWT manager.
func NewJWTManager(secret string, tokenTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// GenerateToken generates a token for an actor, optionally scoped to a
// set of workspaces.
func (m *JWTManager) GenerateToken(actorID string, workspaces []string) (string, error) {
	now := time.Now()
	claims := Claims{
		ActorID:    actorID,
		Workspaces: workspaces,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "formgate",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken validates a token and returns its claims.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
