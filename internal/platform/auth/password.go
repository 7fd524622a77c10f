package auth

import (
	"context"
	"runtime"

	"github.com/alexedwards/argon2id"
	"golang.org/x/sync/semaphore"
)

// Hasher wraps argon2id with a fixed parameter set chosen once at process
// start. The semaphore bounds concurrent hashes to the CPU count so a burst
// of logins cannot saturate every core with key derivation.
type Hasher struct {
	params *argon2id.Params
	sem    *semaphore.Weighted
}

func NewHasher() *Hasher {
	return &Hasher{
		params: argon2id.DefaultParams,
		sem:    semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	return argon2id.CreateHash(plaintext, h.params)
}

// Verify compares plaintext against a stored digest. The comparison inside
// argon2id is constant time.
func (h *Hasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	return argon2id.ComparePasswordAndHash(plaintext, digest)
}
