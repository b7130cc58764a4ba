package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryExpiresEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }

	if err := c.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got map[string]int
	if hit, err := c.GetJSON(ctx, "k", &got); err != nil || !hit || got["a"] != 1 {
		t.Fatalf("get: hit=%v err=%v got=%v", hit, err, got)
	}

	now = now.Add(time.Minute)
	if hit, _ := c.GetJSON(ctx, "k", &got); hit {
		t.Fatalf("entry should have expired")
	}
}

func TestMemoryDel(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	_ = c.SetJSON(ctx, "a", 1, 0)
	_ = c.SetJSON(ctx, "b", 2, 0)
	_ = c.Del(ctx, "a", "missing")

	var v int
	if hit, _ := c.GetJSON(ctx, "a", &v); hit {
		t.Fatalf("a should be gone")
	}
	if hit, _ := c.GetJSON(ctx, "b", &v); !hit || v != 2 {
		t.Fatalf("b: hit=%v v=%d", hit, v)
	}
}

func TestRememberLoadsOnceUntilDeleted(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	loads := 0
	load := func(context.Context) (int, error) {
		loads++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := Remember(ctx, c, "answer", time.Minute, load)
		if err != nil || v != 42 {
			t.Fatalf("remember: v=%d err=%v", v, err)
		}
	}
	if loads != 1 {
		t.Fatalf("want 1 load, got %d", loads)
	}

	_ = c.Del(ctx, "answer")
	if _, err := Remember(ctx, c, "answer", time.Minute, load); err != nil {
		t.Fatalf("remember: %v", err)
	}
	if loads != 2 {
		t.Fatalf("want reload after delete, got %d loads", loads)
	}
}

func TestRememberNilCacheAndErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	if _, err := Remember(ctx, nil, "k", time.Minute, func(context.Context) (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("want load error, got %v", err)
	}

	c := NewMemory()
	_, _ = Remember(ctx, c, "k", time.Minute, func(context.Context) (string, error) { return "", boom })
	var s string
	if hit, _ := c.GetJSON(ctx, "k", &s); hit {
		t.Fatalf("failed load must not be cached")
	}
}
