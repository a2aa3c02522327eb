package ratelimiter

import (
	"testing"
	"time"
)

func TestTokenBucketStartsFull(t *testing.T) {
	tb := NewTokenBucket(0.001, 3)

	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d denied from a full bucket", i+1)
		}
	}
	if tb.Allow() {
		t.Error("request allowed from an empty bucket")
	}
}

func TestTokenBucketRefills(t *testing.T) {
	tb := NewTokenBucket(100, 1)

	if !tb.Allow() {
		t.Fatal("first request denied")
	}
	if tb.Allow() {
		t.Fatal("second request allowed without refill time")
	}

	time.Sleep(20 * time.Millisecond)
	if !tb.Allow() {
		t.Error("request denied after refill interval")
	}
}

func TestTokenBucketCapsAtCapacity(t *testing.T) {
	tb := NewTokenBucket(100, 2)

	for i := 0; i < 2; i++ {
		tb.Allow()
	}
	// 50ms at 100 tokens/s would accrue 5 tokens without the cap.
	time.Sleep(50 * time.Millisecond)

	allowed := 0
	for i := 0; i < 5; i++ {
		if tb.Allow() {
			allowed++
		}
	}
	if allowed != 2 {
		t.Errorf("allowed %d requests in a burst, capacity is 2", allowed)
	}
}
