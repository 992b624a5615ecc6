package auth

import (
	"context"
	"time"
)

// Revoker records access tokens that must no longer be accepted.
type Revoker interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// KV is the subset of a key-value cache needed by RevocationStore.
type KV interface {
	SetNX(ctx context.Context, key string, val []byte, ttl time.Duration) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// RevocationStore keeps revoked token IDs in a KV store until the token
// would have expired anyway.
type RevocationStore struct {
	kv     KV
	prefix string
	now    func() time.Time
}

func NewRevocationStore(kv KV, prefix string) *RevocationStore {
	if prefix == "" {
		prefix = "brainly:revoked:"
	}
	return &RevocationStore{kv: kv, prefix: prefix, now: time.Now}
}

func (s *RevocationStore) key(jti string) string { return s.prefix + jti }

// Revoke marks jti revoked with TTL = exp - now.
func (s *RevocationStore) Revoke(ctx context.Context, jti string, exp time.Time) error {
	ttl := exp.Sub(s.now())
	if ttl <= 0 {
		// already expired; the verifier rejects it on its own
		return nil
	}
	_, err := s.kv.SetNX(ctx, s.key(jti), []byte("1"), ttl)
	return err
}

func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return s.kv.Exists(ctx, s.key(jti))
}

// NopRevoker is used when no revocation store is configured.
type NopRevoker struct{}

func (NopRevoker) Revoke(context.Context, string, time.Time) error { return nil }
func (NopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }
