package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is the pipeline-owned result cache. Entries are bounded by TTL;
// the memory layer additionally evicts expired entries on a sweep interval.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from normalized request parameters. The parts
// are joined with a separator that cannot occur in them after hashing, so
// ("a", "bc") and ("ab", "c") never collide.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "claimcheck:v1:" + hex.EncodeToString(hash[:])
}

// Nop is a cache that stores nothing, used when caching is disabled.
type Nop struct{}

func (Nop) Get(string) ([]byte, bool)               { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error { return nil }
func (Nop) Delete(string) error                     { return nil }
func (Nop) Clear() error                            { return nil }
