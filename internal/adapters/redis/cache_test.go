package redisad_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hotelavail/internal/adapters/redis"
)

func TestCache_SetGetRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	// unknown key is a miss, not an error
	if _, ok, err := c.Get(ctx, "avail:absent"); err != nil || ok {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}

	body := []byte(`[{"id":"A#1"}]`)
	if err := c.Set(ctx, "avail:abc", body, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, "avail:abc")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, body) {
		t.Fatalf("body: %s", got)
	}
}

func TestCache_EntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "avail:ttl", []byte("[]"), 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(61 * time.Second)
	if _, ok, _ := c.Get(ctx, "avail:ttl"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCache_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	mr.Close()
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping to fail after shutdown")
	}
}
