package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_Success(t *testing.T) {
	s := miniredis.RunT(t)

	// non-zero DB to verify it's set
	c, err := OpenRedis(context.Background(), s.Addr(), 2)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	opts := c.Options()
	if opts.DB != 2 {
		t.Fatalf("client DB = %d, want 2", opts.DB)
	}
	if opts.ReadTimeout != ioTimeout || opts.DialTimeout != dialTimeout {
		t.Fatalf("timeouts not applied: %+v", opts)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.SetNX(ctx, "idemp:k", "v", time.Minute).Err(); err != nil {
		t.Fatalf("SETNX err: %v", err)
	}
	if !s.DB(2).Exists("idemp:k") {
		t.Fatal("key not written to DB 2")
	}
	if ttl := s.DB(2).TTL("idemp:k"); ttl != time.Minute {
		t.Fatalf("TTL = %v, want 1m", ttl)
	}
}

func TestOpenRedis_Failure(t *testing.T) {
	// Unresolvable host → Ping fails fast
	_, err := OpenRedis(context.Background(), "not-a-real-host:6379", 0)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "not-a-real-host") {
		t.Fatalf("error should name the address: %v", err)
	}
}

func TestOpenRedis_EmptyAddr(t *testing.T) {
	if _, err := OpenRedis(context.Background(), "", 0); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestOpenRedis_CanceledContext(t *testing.T) {
	s := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := OpenRedis(ctx, s.Addr(), 0); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
