package cache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCache_SetGetExpire(t *testing.T) {
	c := NewCache(time.Hour)
	defer c.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if got, ok, _ := c.Get(ctx, "k"); !ok || string(got) != "v" {
		t.Fatalf("Expected hit with v, got %q %v", got, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Expected expired entry to miss")
	}

	c.sweep()
	if c.Len() != 0 {
		t.Errorf("Expected sweep to drop expired entry, %d left", c.Len())
	}
}

func TestCache_SetCopiesValue(t *testing.T) {
	c := NewCache(time.Hour)
	defer c.Close()
	ctx := context.Background()

	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, time.Minute)
	buf[0] = 'x'

	if got, _, _ := c.Get(ctx, "k"); string(got) != "abc" {
		t.Errorf("Expected stored copy, got %q", got)
	}
}

func TestCache_DeletePrefix(t *testing.T) {
	c := NewCache(time.Hour)
	defer c.Close()
	ctx := context.Background()

	for _, k := range []string{"dash:list:users:a", "dash:list:users:b", "dash:list:coupons:a"} {
		_ = c.Set(ctx, k, []byte("1"), time.Minute)
	}

	if err := c.DeletePrefix(ctx, "dash:list:users:"); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := c.Get(ctx, "dash:list:users:a"); ok {
		t.Error("Expected users entry removed")
	}
	if _, ok, _ := c.Get(ctx, "dash:list:coupons:a"); !ok {
		t.Error("Expected coupons entry kept")
	}
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	c.Close()
	c.Close()
}
