package assetcache

import (
	"errors"
	"fmt"
	"time"
)

// Sentinels for errors.Is. The concrete error types below carry the key
// and cause; each unwraps to its sentinel.
var (
	ErrInvalidKey    = errors.New("assetcache: invalid key")
	ErrLoadTimeout   = errors.New("assetcache: load timed out")
	ErrCacheCleared  = errors.New("assetcache: cache cleared")
	ErrDuplicateLoad = errors.New("assetcache: load already pending")
)

// InvalidKeyError rejects a key before any I/O: empty, no extension, or an
// extension outside the configured format set.
type InvalidKeyError struct {
	Key    string
	Reason string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid asset key %q: %s", e.Key, e.Reason)
}

func (e *InvalidKeyError) Unwrap() error { return ErrInvalidKey }

// LoadError wraps a fetch primitive failure for a key. Not retried by the
// cache; a later GetOrLoad for the same key starts a fresh attempt.
type LoadError struct {
	Key   string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q failed: %v", e.Key, e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }

// TimeoutError settles an attempt whose timeout fired before the fetch.
// The late fetch result, if any, is discarded.
type TimeoutError struct {
	Key   string
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("load %q timed out after %s", e.Key, e.After)
}

func (e *TimeoutError) Unwrap() error { return ErrLoadTimeout }

// DuplicateLoadError is returned under RejectPendingDuplicates when a load
// for the key is already in flight.
type DuplicateLoadError struct {
	Key string
}

func (e *DuplicateLoadError) Error() string {
	return fmt.Sprintf("load %q rejected: already pending", e.Key)
}

func (e *DuplicateLoadError) Unwrap() error { return ErrDuplicateLoad }
