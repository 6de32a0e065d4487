package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "panel", "cache.sqlite"), ttl)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCachePutGet(t *testing.T) {
	c := openTest(t, time.Hour)
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "/users"); err != nil || hit {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}

	if err := c.Put(ctx, "/users", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	body, hit, err := c.Get(ctx, "/users")
	if err != nil || !hit || string(body) != `[{"id":1}]` {
		t.Fatalf("get after put: %q hit=%v err=%v", body, hit, err)
	}

	// Overwrite refreshes the body.
	if err := c.Put(ctx, "/users", []byte(`[]`)); err != nil {
		t.Fatalf("second put: %v", err)
	}
	body, hit, _ = c.Get(ctx, "/users")
	if !hit || string(body) != `[]` {
		t.Fatalf("get after overwrite: %q hit=%v", body, hit)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := openTest(t, time.Minute)
	ctx := context.Background()

	if err := c.Put(ctx, "/posts", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Advance the clock past the TTL.
	base := time.Now()
	c.now = func() time.Time { return base.Add(2 * time.Minute) }

	if _, hit, err := c.Get(ctx, "/posts"); err != nil || hit {
		t.Fatalf("expired entry must miss: hit=%v err=%v", hit, err)
	}
}
