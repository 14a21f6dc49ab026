package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss is returned by [MustGet] when the key is absent.
	ErrCacheMiss = errors.New("cache miss")

	// ErrNetwork marks a failure talking to a remote backend.
	ErrNetwork = errors.New("cache backend unreachable")
)

// transientError marks a backend failure that a later attempt may not hit.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as worth retrying. It returns nil for nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err was marked with [Transient].
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// retryBackoff lists the waits between attempts; its length is the number
// of retries. Tests shorten it.
var retryBackoff = []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}

// withRetry runs op, retrying transient failures after each backoff step.
func withRetry(ctx context.Context, op func() error) error {
	err := op()
	for _, wait := range retryBackoff {
		if !IsTransient(err) {
			return err
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		err = op()
	}
	return err
}

// MustGet is Get with a miss reported as ErrCacheMiss.
func MustGet(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, ok, err := c.Get(ctx, key)
	switch {
	case err != nil:
		return nil, err
	case !ok:
		return nil, ErrCacheMiss
	}
	return data, nil
}
