package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DenyList records revoked token ids until their natural expiry. Session
// verification stays stateless except for this one lookup; see DESIGN.md
// for the tradeoff note.
type DenyList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RedisDenyList struct {
	client *redis.Client
}

func NewRedisDenyList(client *redis.Client) *RedisDenyList {
	return &RedisDenyList{client: client}
}

func denyKey(jti string) string {
	return "session:denied:" + jti
}

func (d *RedisDenyList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to deny.
		return nil
	}
	return d.client.Set(ctx, denyKey(jti), "1", ttl).Err()
}

func (d *RedisDenyList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, denyKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
