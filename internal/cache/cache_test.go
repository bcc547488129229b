package cache

import (
	"strings"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := New(true, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	key := Key("run-1", "/api/v1/draft")
	if _, _, ok := c.Get(key); ok {
		t.Fatal("empty cache returned a hit")
	}
	etag := c.Set(key, []byte(`[1,2]`))
	data, got, ok := c.Get(key)
	if !ok || string(data) != `[1,2]` || got != etag {
		t.Errorf("Get = %s, %s, %v", data, got, ok)
	}
	if _, _, ok := c.Get(Key("run-2", "/api/v1/draft")); ok {
		t.Error("another run's key should miss")
	}

	now = now.Add(2 * time.Minute)
	if _, _, ok := c.Get(key); ok {
		t.Error("expired entry returned a hit")
	}
	c.evict()
	stats := c.Stats()
	if stats["total_keys"] != 0 || stats["hits"] != 1 || stats["misses"] != 3 {
		t.Errorf("stats = %v", stats)
	}
}

func TestCache_Disabled(t *testing.T) {
	c := New(false, 0)
	if c.TTL() != DefaultTTL {
		t.Errorf("TTL = %v, want %v", c.TTL(), DefaultTTL)
	}
	etag := c.Set("k", []byte("x"))
	if etag != ComputeETag([]byte("x")) {
		t.Errorf("Set etag = %q", etag)
	}
	if _, _, ok := c.Get("k"); ok {
		t.Error("disabled cache returned a hit")
	}
}

func TestETag(t *testing.T) {
	etag := ComputeETag([]byte("panel"))
	if !strings.HasPrefix(etag, `W/"`) || etag != ComputeETag([]byte("panel")) {
		t.Errorf("ComputeETag = %q", etag)
	}
	if etag == ComputeETag([]byte("other")) {
		t.Error("different bodies share an etag")
	}
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"*", true},
		{etag, true},
		{`W/"0000"`, false},
	}
	for _, tt := range tests {
		if got := CheckETagMatch(tt.header, etag); got != tt.want {
			t.Errorf("CheckETagMatch(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
