package cache

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis is an in-memory stand-in for the handful of commands RedisCache
// issues. Unused UniversalClient methods panic through the nil embedding.
type fakeRedis struct {
	redis.UniversalClient

	data map[string]string
	ttls map[string]time.Duration

	failures int // fail this many Get/Set calls before succeeding
	getCalls int
	setCalls int

	pageSize int
	scan     []string // keys matched by the scan in progress
	scans    int
	closed   bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		data:     map[string]string{},
		ttls:     map[string]time.Duration{},
		pageSize: 2,
	}
}

var errConnReset = errors.New("read tcp 127.0.0.1:6379: connection reset by peer")

func (f *fakeRedis) fail() bool {
	if f.failures > 0 {
		f.failures--
		return true
	}
	return false
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.getCalls++
	if f.fail() {
		return redis.NewStringResult("", errConnReset)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.setCalls++
	if f.fail() {
		return redis.NewStatusResult("", errConnReset)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			delete(f.ttls, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// Scan pages through the keys that matched when the scan started, so
// deleting between pages does not shift the cursor.
func (f *fakeRedis) Scan(_ context.Context, cursor uint64, match string, _ int64) *redis.ScanCmd {
	if cursor == 0 {
		f.scans++
		f.scan = f.scan[:0]
		prefix := strings.TrimSuffix(match, "*")
		for k := range f.data {
			if strings.HasPrefix(k, prefix) {
				f.scan = append(f.scan, k)
			}
		}
		sort.Strings(f.scan)
	}
	start := int(cursor)
	end := start + f.pageSize
	if end >= len(f.scan) {
		return redis.NewScanCmdResult(f.scan[start:], 0, nil)
	}
	return redis.NewScanCmdResult(f.scan[start:end], uint64(end), nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func fastRetries(t *testing.T) {
	t.Helper()
	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })
}

func TestRedisCacheWithFakeClient(t *testing.T) {
	exercise(t, NewRedisCacheFromClient(newFakeRedis(), DefaultRedisPrefix))
}

func TestRedisCachePrefixesKeys(t *testing.T) {
	ctx := context.Background()
	f := newFakeRedis()
	c := NewRedisCacheFromClient(f, "tilegrid:")

	if err := c.Set(ctx, "layout", []byte("doc"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if got := f.data["tilegrid:layout"]; got != "doc" {
		t.Errorf("stored value = %q, want %q", got, "doc")
	}
	if got := f.ttls["tilegrid:layout"]; got != time.Minute {
		t.Errorf("ttl = %v, want %v", got, time.Minute)
	}
	if err := c.Close(); err != nil || !f.closed {
		t.Errorf("Close: err %v, closed %v", err, f.closed)
	}
}

func TestRedisCacheRetriesTransientFailures(t *testing.T) {
	fastRetries(t)
	ctx := context.Background()

	t.Run("get recovers", func(t *testing.T) {
		f := newFakeRedis()
		f.data["p:k"] = "v"
		f.failures = 2
		data, hit, err := NewRedisCacheFromClient(f, "p:").Get(ctx, "k")
		if err != nil || !hit || string(data) != "v" {
			t.Fatalf("Get = %q, %v, %v", data, hit, err)
		}
		if f.getCalls != 3 {
			t.Errorf("Get calls = %d, want 3", f.getCalls)
		}
	})

	t.Run("set recovers", func(t *testing.T) {
		f := newFakeRedis()
		f.failures = 1
		if err := NewRedisCacheFromClient(f, "p:").Set(ctx, "k", []byte("v"), 0); err != nil {
			t.Fatal(err)
		}
		if f.setCalls != 2 || f.data["p:k"] != "v" {
			t.Errorf("Set calls = %d, stored %q", f.setCalls, f.data["p:k"])
		}
	})

	t.Run("exhausted", func(t *testing.T) {
		f := newFakeRedis()
		f.failures = 10
		_, hit, err := NewRedisCacheFromClient(f, "p:").Get(ctx, "k")
		if hit || !errors.Is(err, ErrNetwork) {
			t.Fatalf("Get = hit %v, err %v; want ErrNetwork", hit, err)
		}
		if f.getCalls != 3 {
			t.Errorf("Get calls = %d, want 3", f.getCalls)
		}
	})

	t.Run("miss is not retried", func(t *testing.T) {
		f := newFakeRedis()
		if _, hit, err := NewRedisCacheFromClient(f, "p:").Get(ctx, "k"); hit || err != nil {
			t.Fatalf("Get = hit %v, err %v", hit, err)
		}
		if f.getCalls != 1 {
			t.Errorf("Get calls = %d, want 1", f.getCalls)
		}
	})
}

func TestRedisCacheClearPagesAndKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	f := newFakeRedis()
	c := NewRedisCacheFromClient(f, "tilegrid:")

	for _, k := range []string{"a", "b", "c", "d", "e"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	f.data["other:a"] = "keep"
	f.data["tilegrid"] = "keep"

	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if f.scans != 1 {
		t.Errorf("scans started = %d, want 1", f.scans)
	}
	var left []string
	for k := range f.data {
		left = append(left, k)
	}
	sort.Strings(left)
	if strings.Join(left, ",") != "other:a,tilegrid" {
		t.Errorf("keys after Clear = %v, want [other:a tilegrid]", left)
	}
}
