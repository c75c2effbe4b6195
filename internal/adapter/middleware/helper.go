package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

// buildKey ignores a trailing slash: /donation and /donation/ are one route.
func buildKey(method, path, scope, key string) string {
	if p := strings.TrimRight(path, "/"); p != "" {
		path = p
	}
	return "idemp:" + strings.ToLower(method) + ":" + path + ":" + scope + ":" + strings.ToLower(key)
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// validKey accepts a canonical UUID or 32 lowercase hex characters.
func validKey(k string) bool {
	k = strings.ToLower(strings.TrimSpace(k))
	if reHex32.MatchString(k) {
		return true
	}
	_, err := uuid.Parse(k)
	return err == nil && len(k) == 36
}

// ---- Redis helpers ----
func provisionalSet(ctx context.Context, rdb *redis.Client, key string, entry idempEntry) (bool, error) {
	payload, _ := json.Marshal(entry)
	return rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func loadEntry(ctx context.Context, rdb *redis.Client, key string) (idempEntry, error) {
	var e idempEntry
	v, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	_ = json.Unmarshal(v, &e)
	return e, nil
}

func saveFinal(ctx context.Context, rdb *redis.Client, key string, entry idempEntry, ttl time.Duration) error {
	payload, _ := json.Marshal(entry)
	return rdb.Set(ctx, key, payload, ttl).Err()
}
