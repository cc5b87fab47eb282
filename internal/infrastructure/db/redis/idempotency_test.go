package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeKV is an in-memory keyValue with SETNX semantics.
type fakeKV struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func newTestStore(kv *fakeKV) *IdempotencyStore {
	return &IdempotencyStore{client: kv, ttl: idempotencyTTL}
}

func TestIdempotencyStore_Key(t *testing.T) {
	s := NewIdempotencyStore(nil)
	if got := s.key("posts:u1", "abc"); got != "idem:posts:u1:abc" {
		t.Fatalf("unexpected key: %s", got)
	}
	if s.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %v", s.ttl)
	}
}

func TestIdempotencyStore_LookupMiss(t *testing.T) {
	s := newTestStore(newFakeKV())

	v, found, err := s.Lookup(context.Background(), "posts:u1", "abc")
	if err != nil {
		t.Fatalf("a missing key is not an error: %v", err)
	}
	if found || v != "" {
		t.Fatalf("expected miss, got %q found=%v", v, found)
	}
}

func TestIdempotencyStore_RememberThenLookup(t *testing.T) {
	kv := newFakeKV()
	s := newTestStore(kv)
	ctx := context.Background()

	if err := s.Remember(ctx, "posts:u1", "abc", "p1"); err != nil {
		t.Fatalf("remember: %v", err)
	}
	v, found, err := s.Lookup(ctx, "posts:u1", "abc")
	if err != nil || !found || v != "p1" {
		t.Fatalf("expected p1, got %q found=%v err=%v", v, found, err)
	}
	if got := kv.ttls["idem:posts:u1:abc"]; got != 24*time.Hour {
		t.Fatalf("unexpected ttl: %v", got)
	}

	// Same key under another scope is independent.
	if _, found, _ := s.Lookup(ctx, "posts:u2", "abc"); found {
		t.Fatalf("key leaked across scopes")
	}
}

func TestIdempotencyStore_FirstRememberWins(t *testing.T) {
	s := newTestStore(newFakeKV())
	ctx := context.Background()

	if err := s.Remember(ctx, "posts:u1", "abc", "p1"); err != nil {
		t.Fatalf("remember: %v", err)
	}
	if err := s.Remember(ctx, "posts:u1", "abc", "p2"); err != nil {
		t.Fatalf("second remember should not fail: %v", err)
	}
	v, _, _ := s.Lookup(ctx, "posts:u1", "abc")
	if v != "p1" {
		t.Fatalf("expected first value to be kept, got %q", v)
	}
}

func TestIdempotencyStore_BackendErrors(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("connection refused")
	s := newTestStore(kv)
	ctx := context.Background()

	_, found, err := s.Lookup(ctx, "posts:u1", "abc")
	if err == nil || found {
		t.Fatalf("expected lookup error, got found=%v err=%v", found, err)
	}
	if !errors.Is(err, kv.err) || errors.Is(err, redis.Nil) {
		t.Fatalf("lookup error not wrapped: %v", err)
	}

	if err := s.Remember(ctx, "posts:u1", "abc", "p1"); !errors.Is(err, kv.err) {
		t.Fatalf("remember error not wrapped: %v", err)
	}
}
