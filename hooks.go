package assetcache

import "time"

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; the cache calls them on
// hot paths. Wrap with hooks/async to offload expensive sinks.
type Hooks interface {
	// A resident record was dropped to honor MaxSize or MaxIdle.
	// idle is the time since the record's last use.
	EntryEvicted(key string, idle time.Duration)

	// An attempt's timeout fired before its fetch settled.
	LoadTimedOut(key string, after time.Duration)

	// A fetch completed after its attempt had been settled (timeout or
	// Clear); the result was discarded without touching the resident set.
	StaleCompletionDiscarded(key string)

	// The fetch primitive failed (not a timeout).
	FetchFailed(key string, err error)

	// A store-tier entry was deleted by the cache on read.
	// reason ∈ {"corrupt", "value_decode"}
	StoreSelfHeal(key, reason string)

	// The store tier returned ok=false on Set (backpressure/admission).
	StoreSetRejected(key string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) EntryEvicted(string, time.Duration)   {}
func (NopHooks) LoadTimedOut(string, time.Duration)   {}
func (NopHooks) StaleCompletionDiscarded(string)      {}
func (NopHooks) FetchFailed(string, error)            {}
func (NopHooks) StoreSelfHeal(string, string)         {}
func (NopHooks) StoreSetRejected(string)              {}
