package assetcache

import (
	"context"
	"time"

	cd "github.com/unkn0wn-root/assetcache/codec"
	st "github.com/unkn0wn-root/assetcache/store"
)

// Fetcher is the asset I/O primitive. Implementations decode a key (URL,
// path) into a handle H. The cache guarantees at most one outstanding
// Fetch per key at a time; Fetch must honor ctx cancellation if it can.
type Fetcher[H any] interface {
	Fetch(ctx context.Context, key string) (H, error)
}

// FetchFunc adapts a plain function to the Fetcher interface.
type FetchFunc[H any] func(ctx context.Context, key string) (H, error)

func (f FetchFunc[H]) Fetch(ctx context.Context, key string) (H, error) { return f(ctx, key) }

// PreloadResult partitions the keys of a Preload call by outcome.
// Both slices preserve the input order, not completion order.
type PreloadResult struct {
	Succeeded []string
	Failed    []string
}

// Stats is a read-only snapshot of the resident set.
type Stats struct {
	Size    int      // resident decoded handles
	MaxSize int      // eviction bound
	Pending int      // in-flight loads
	Keys    []string // resident keys, sorted
}

// Cache resolves keys to loaded asset handles. H is the caller's decoded
// handle type (an image, a sprite sheet, a raw []byte).
type Cache[H any] interface {
	// GetOrLoad returns the handle for key, loading it if absent.
	// Concurrent callers for the same key share one fetch and one outcome.
	// Fails fast with an InvalidKeyError before any I/O on a malformed key.
	GetOrLoad(ctx context.Context, key string) (H, error)

	// IsCached reports whether key is resident. It does not refresh the
	// key's recency.
	IsCached(key string) bool

	// Remove drops key from the resident set (and the store tier, if any).
	// No-op when absent.
	Remove(key string)

	// Clear empties the resident set and forgets all pending loads.
	// In-flight fetches are not cancelled: their settlement finds no
	// matching pending entry and is discarded as stale. With
	// Options.FailPendingOnClear the waiting callers are failed with
	// ErrCacheCleared instead.
	Clear()

	// Preload issues GetOrLoad for every key concurrently and waits for
	// all of them to settle. Individual failures are partitioned into the
	// result, never propagated as an aggregate error.
	Preload(ctx context.Context, keys []string) PreloadResult

	// Stats returns a consistent snapshot for observability.
	Stats() Stats

	// Close stops background maintenance and closes the store tier.
	Close(ctx context.Context) error
}

// Options tune the cache. Only Fetcher is required; Codec is required as
// soon as a Store is configured.
type Options[H any] struct {
	// Required
	Fetcher Fetcher[H]

	MaxSize int           // resident handle bound; 0 => 100
	Timeout time.Duration // per-load attempt budget; 0 => 10s
	Formats []string      // accepted extension suffixes; nil => png,jpg,jpeg,webp,svg

	Logger Logger // if nil, NopLogger
	Hooks  Hooks  // if nil, NopHooks

	// Optional byte tier. Encoded handles survive LRU eviction of the
	// in-memory tier and are revalidated (wire framing) on read.
	Store     st.Store
	Codec     cd.Codec[H]
	Namespace string        // store key prefix; "" => "assets"
	StoreTTL  time.Duration // 0 => 1h

	// RejectPendingDuplicates makes a GetOrLoad that finds an in-flight
	// load for the same key fail with ErrDuplicateLoad instead of joining
	// it. Off by default; coalescing is the useful behavior.
	RejectPendingDuplicates bool

	// FailPendingOnClear makes Clear settle all pending loads with
	// ErrCacheCleared. By default pending callers still receive the
	// eventual fetch outcome; only the resident set is untouched.
	FailPendingOnClear bool

	// Idle sweep: drop records unused for longer than MaxIdle.
	// MaxIdle 0 disables the sweep. SweepInterval 0 => 1m.
	MaxIdle       time.Duration
	SweepInterval time.Duration
}

// New builds a Cache. The returned value is safe for concurrent use.
func New[H any](opts Options[H]) (Cache[H], error) {
	return newCache[H](opts)
}
