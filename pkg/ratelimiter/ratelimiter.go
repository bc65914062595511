// Package ratelimiter bounds request throughput at the HTTP edge. The
// document service uses a token bucket so upload bursts are absorbed
// while sustained load stays capped.
package ratelimiter

// RateLimiter admits or rejects one request.
type RateLimiter interface {
	// Allow returns true if the request is allowed, otherwise returns false.
	Allow() bool
}
