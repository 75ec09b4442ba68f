package feedclient

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/feed-service/internal/auth"
	"github.com/spec-kit/feed-service/internal/domain"
)

// TokenInfo is the client's local view of its own claims. It is decoded
// WITHOUT signature verification and exists purely for display: the server
// alone decides what the token may do.
type TokenInfo struct {
	ID        string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the claim window has passed.
func (t *TokenInfo) Expired() bool {
	return !t.ExpiresAt.IsZero() && !time.Now().Before(t.ExpiresAt)
}

// DecodeToken parses the payload of a token without verifying it.
func DecodeToken(token string) (*TokenInfo, error) {
	claims := &auth.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	info := &TokenInfo{ID: claims.ID, Role: claims.Role}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
