package auth

import (
	"context"
	"time"

	"kinetica/internal/logger"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// Denylist records logged-out access tokens by jti until they would have
// expired anyway.
type Denylist struct {
	redis *redis.Client
	now   func() time.Time
}

func NewDenylist(rdb *redis.Client) *Denylist {
	return &Denylist{redis: rdb, now: time.Now}
}

func (d *Denylist) Revoke(ctx context.Context, claims *JWTClaims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return ErrInvalidToken
	}

	ttl := claims.ExpiresAt.Time.Sub(d.now())
	if ttl <= 0 {
		return nil
	}

	return d.redis.Set(ctx, revokedKeyPrefix+claims.ID, 1, ttl.Round(time.Second)).Err()
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.redis.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Check adapts the denylist to a TokenCheck. A Redis outage is logged and
// the token is let through; access tokens are short-lived.
func (d *Denylist) Check() TokenCheck {
	return func(ctx context.Context, claims *JWTClaims) error {
		if claims.ID == "" {
			return nil
		}
		revoked, err := d.IsRevoked(ctx, claims.ID)
		if err != nil {
			logger.WithError(err).Warn("token denylist unavailable", "jti", claims.ID)
			return nil
		}
		if revoked {
			return ErrTokenRevoked
		}
		return nil
	}
}
