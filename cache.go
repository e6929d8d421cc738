package assetcache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	cd "github.com/unkn0wn-root/assetcache/codec"
	"github.com/unkn0wn-root/assetcache/internal/util"
	"github.com/unkn0wn-root/assetcache/internal/wire"
	st "github.com/unkn0wn-root/assetcache/store"
)

const (
	defaultMaxSize  = 100
	defaultTimeout  = 10 * time.Second
	defaultStoreTTL = time.Hour
	defaultSweep    = time.Minute
)

// record is a resident decoded handle. touch is a monotonic use counter:
// eviction removes the smallest touch, which orders equal timestamps by
// insertion/use order deterministically.
type record[H any] struct {
	handle   H
	lastUsed time.Time
	touch    uint64
}

// attempt is one in-flight load shared by all concurrent requesters of a
// key. It settles exactly once; whichever of fetch-completion, timeout or
// Clear reaches it first wins.
type attempt[H any] struct {
	key    string
	done   chan struct{}
	once   sync.Once
	handle H
	err    error
}

func newAttempt[H any](key string) *attempt[H] {
	return &attempt[H]{key: key, done: make(chan struct{})}
}

func (a *attempt[H]) resolve(h H, err error) {
	a.once.Do(func() {
		a.handle = h
		a.err = err
		close(a.done)
	})
}

type cache[H any] struct {
	fetcher Fetcher[H]
	store   st.Store
	codec   cd.Codec[H]
	log     Logger
	hooks   Hooks

	ns       string
	maxSize  int
	timeout  time.Duration
	storeTTL time.Duration
	formats  map[string]struct{}

	rejectDup   bool
	failOnClear bool

	// mu guards records, pending and touches. The pending entry for a key
	// is registered before the load goroutine starts, so a caller arriving
	// mid-flight always joins the existing attempt instead of fetching.
	mu      sync.RWMutex
	records map[string]*record[H]
	pending map[string]*attempt[H]
	touches uint64

	// idle sweep
	maxIdle   time.Duration
	ticker    *time.Ticker
	stopCh    chan struct{}
	closeWg   sync.WaitGroup
	closeOnce sync.Once
}

func newCache[H any](opts Options[H]) (*cache[H], error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("assetcache: fetcher is required")
	}
	if opts.Store != nil && opts.Codec == nil {
		return nil, fmt.Errorf("assetcache: codec is required when a store is configured")
	}

	c := &cache[H]{
		fetcher: opts.Fetcher,
		store:   opts.Store,
		codec:   opts.Codec,
		records: make(map[string]*record[H]),
		pending: make(map[string]*attempt[H]),

		rejectDup:   opts.RejectPendingDuplicates,
		failOnClear: opts.FailPendingOnClear,
		maxIdle:     opts.MaxIdle,
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.maxSize = coalesce[int](opts.MaxSize, defaultMaxSize)
	c.timeout = coalesce[time.Duration](opts.Timeout, defaultTimeout)
	c.storeTTL = coalesce[time.Duration](opts.StoreTTL, defaultStoreTTL)
	c.ns = coalesce[string](opts.Namespace, "assets")

	formats := opts.Formats
	if formats == nil {
		formats = defaultFormats
	}
	c.formats = make(map[string]struct{}, len(formats))
	for _, f := range formats {
		c.formats[f] = struct{}{}
	}

	if c.maxIdle > 0 {
		sweep := coalesce[time.Duration](opts.SweepInterval, defaultSweep)
		c.ticker = time.NewTicker(sweep)
		c.stopCh = make(chan struct{})
		c.closeWg.Add(1)
		go c.sweepLoop()
	}
	return c, nil
}

func (c *cache[H]) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		if c.stopCh != nil {
			close(c.stopCh)
			c.closeWg.Wait()
			c.ticker.Stop()
		}
	})
	if c.store != nil {
		return c.store.Close(ctx)
	}
	return nil
}

func (c *cache[H]) GetOrLoad(ctx context.Context, key string) (H, error) {
	var zero H
	if err := c.validateKey(key); err != nil {
		return zero, err
	}

	c.mu.Lock()
	if r, ok := c.records[key]; ok {
		c.touchLocked(r)
		h := r.handle
		c.mu.Unlock()
		return h, nil
	}
	if a, ok := c.pending[key]; ok {
		c.mu.Unlock()
		if c.rejectDup {
			return zero, &DuplicateLoadError{Key: key}
		}
		return c.await(ctx, a)
	}
	a := newAttempt[H](key)
	c.pending[key] = a
	c.mu.Unlock()

	go c.run(ctx, a)
	return c.await(ctx, a)
}

func (c *cache[H]) IsCached(key string) bool {
	c.mu.RLock()
	_, ok := c.records[key]
	c.mu.RUnlock()
	return ok
}

func (c *cache[H]) Remove(key string) {
	c.mu.Lock()
	delete(c.records, key)
	c.mu.Unlock()
	if c.store != nil {
		if err := c.store.Del(context.Background(), util.StoreKey(c.ns, key)); err != nil {
			c.log.Warn("store delete failed", Fields{"key": key, "err": err})
		}
	}
}

func (c *cache[H]) Clear() {
	var zero H
	c.mu.Lock()
	c.records = make(map[string]*record[H])
	dropped := c.pending
	c.pending = make(map[string]*attempt[H])
	c.mu.Unlock()

	if c.failOnClear {
		for _, a := range dropped {
			a.resolve(zero, &LoadError{Key: a.key, Cause: ErrCacheCleared})
		}
	}
	if len(dropped) > 0 {
		c.log.Debug("clear dropped pending loads", Fields{"count": len(dropped)})
	}
}

func (c *cache[H]) Preload(ctx context.Context, keys []string) PreloadResult {
	errs := make([]error, len(keys))
	var wg sync.WaitGroup
	wg.Add(len(keys))
	for i, k := range keys {
		go func(i int, k string) {
			defer wg.Done()
			_, errs[i] = c.GetOrLoad(ctx, k)
		}(i, k)
	}
	wg.Wait()

	var res PreloadResult
	for i, k := range keys {
		if errs[i] == nil {
			res.Succeeded = append(res.Succeeded, k)
		} else {
			res.Failed = append(res.Failed, k)
			c.log.Warn("preload key failed", Fields{"key": k, "err": errs[i]})
		}
	}
	return res
}

func (c *cache[H]) Stats() Stats {
	c.mu.RLock()
	s := Stats{
		Size:    len(c.records),
		MaxSize: c.maxSize,
		Pending: len(c.pending),
		Keys:    make([]string, 0, len(c.records)),
	}
	for k := range c.records {
		s.Keys = append(s.Keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(s.Keys)
	return s
}

func (c *cache[H]) validateKey(key string) error {
	if key == "" {
		return &InvalidKeyError{Key: key, Reason: "empty key"}
	}
	ext := util.Ext(key)
	if ext == "" {
		return &InvalidKeyError{Key: key, Reason: "missing extension"}
	}
	if _, ok := c.formats[ext]; !ok {
		return &InvalidKeyError{Key: key, Reason: fmt.Sprintf("unsupported format %q", ext)}
	}
	return nil
}

// await blocks until the shared attempt settles or the caller's ctx ends.
// A caller backing out does not affect the attempt; the load continues for
// the remaining requesters.
func (c *cache[H]) await(ctx context.Context, a *attempt[H]) (H, error) {
	select {
	case <-a.done:
		return a.handle, a.err
	case <-ctx.Done():
		var zero H
		return zero, ctx.Err()
	}
}

type outcome[H any] struct {
	handle H
	err    error
}

// run drives one attempt: the load (store tier, then fetch) races the
// timeout; first to settle wins. Detached from the first caller's
// cancellation so late joiners are not failed by an early caller backing
// out; ctx values (tracing) are preserved.
func (c *cache[H]) run(ctx context.Context, a *attempt[H]) {
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()

	resCh := make(chan outcome[H], 1)
	go func() {
		h, err := c.load(fctx, a.key)
		resCh <- outcome[H]{handle: h, err: err}
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case out := <-resCh:
		if out.err != nil {
			out.err = &LoadError{Key: a.key, Cause: out.err}
			c.hooks.FetchFailed(a.key, out.err)
		}
		c.settle(a, out.handle, out.err)
	case <-timer.C:
		var zero H
		c.hooks.LoadTimedOut(a.key, c.timeout)
		c.settle(a, zero, &TimeoutError{Key: a.key, After: c.timeout})
		cancel()
		go c.drainLate(a.key, resCh)
	}
}

// settle resolves the attempt and, when it still owns the pending slot,
// applies the outcome to the resident set. An attempt superseded by Clear
// (or by a newer attempt after its own timeout) must not mutate records.
func (c *cache[H]) settle(a *attempt[H], h H, err error) {
	c.mu.Lock()
	current := c.pending[a.key] == a
	if current {
		delete(c.pending, a.key)
		if err == nil {
			c.insertLocked(a.key, h)
		}
	}
	c.mu.Unlock()

	if !current && err == nil {
		c.hooks.StaleCompletionDiscarded(a.key)
		c.log.Debug("stale completion discarded", Fields{"key": a.key})
	}
	a.resolve(h, err)
}

// drainLate observes the fetch outcome that lost the timeout race, for
// logging only. The attempt has already settled; the result is never
// applied.
func (c *cache[H]) drainLate(key string, resCh <-chan outcome[H]) {
	out := <-resCh
	if out.err == nil {
		c.hooks.StaleCompletionDiscarded(key)
		c.log.Debug("late fetch success discarded", Fields{"key": key})
		return
	}
	c.log.Debug("late fetch failure after timeout", Fields{"key": key, "err": out.err})
}

// load is the slow path of one attempt: store tier first, then the fetch
// primitive. A fresh fetch is written back to the store best-effort.
func (c *cache[H]) load(ctx context.Context, key string) (H, error) {
	var zero H
	if c.store != nil {
		if h, ok := c.fromStore(ctx, key); ok {
			return h, nil
		}
	}
	h, err := c.fetcher.Fetch(ctx, key)
	if err != nil {
		return zero, err
	}
	if c.store != nil {
		c.toStore(ctx, key, h)
	}
	return h, nil
}

func (c *cache[H]) fromStore(ctx context.Context, key string) (H, bool) {
	var zero H
	sk := util.StoreKey(c.ns, key)
	raw, ok, err := c.store.Get(ctx, sk)
	if err != nil {
		c.log.Warn("store get failed", Fields{"key": key, "err": err})
		return zero, false
	}
	if !ok {
		return zero, false
	}
	_, payload, err := wire.DecodeEntry(raw)
	if err != nil {
		_ = c.store.Del(ctx, sk) // self-heal corrupt
		c.hooks.StoreSelfHeal(key, "corrupt")
		return zero, false
	}
	h, err := c.codec.Decode(payload)
	if err != nil {
		_ = c.store.Del(ctx, sk) // self-heal
		c.hooks.StoreSelfHeal(key, "value_decode")
		return zero, false
	}
	return h, true
}

func (c *cache[H]) toStore(ctx context.Context, key string, h H) {
	payload, err := c.codec.Encode(h)
	if err != nil {
		c.log.Warn("store encode failed", Fields{"key": key, "err": err})
		return
	}
	b := wire.EncodeEntry(time.Now().UnixNano(), payload)
	ok, err := c.store.Set(ctx, util.StoreKey(c.ns, key), b, int64(len(b)), c.storeTTL)
	if err != nil {
		c.log.Warn("store set failed", Fields{"key": key, "err": err})
		return
	}
	if !ok {
		c.hooks.StoreSetRejected(key)
	}
}

func (c *cache[H]) touchLocked(r *record[H]) {
	c.touches++
	r.touch = c.touches
	r.lastUsed = time.Now()
}

// insertLocked adds a freshly loaded record, evicting first so the bound
// holds after every insertion. Victim selection is strict LRU by use,
// ties broken by insertion order via the touch counter.
func (c *cache[H]) insertLocked(key string, h H) {
	for len(c.records) >= c.maxSize {
		c.evictOldestLocked()
	}
	r := &record[H]{handle: h}
	c.touchLocked(r)
	c.records[key] = r
}

func (c *cache[H]) evictOldestLocked() {
	var victim string
	var oldest uint64
	for k, r := range c.records {
		if victim == "" || r.touch < oldest {
			victim = k
			oldest = r.touch
		}
	}
	if victim == "" {
		return
	}
	idle := time.Since(c.records[victim].lastUsed)
	delete(c.records, victim)
	c.hooks.EntryEvicted(victim, idle)
	c.log.Debug("evicted least recently used record", Fields{"key": victim, "idle": idle})
}

func (c *cache[H]) sweepLoop() {
	defer c.closeWg.Done()
	for {
		select {
		case <-c.ticker.C:
			c.sweepIdle()
		case <-c.stopCh:
			return
		}
	}
}

func (c *cache[H]) sweepIdle() {
	cutoff := time.Now().Add(-c.maxIdle)

	c.mu.Lock()
	for k, r := range c.records {
		if r.lastUsed.Before(cutoff) {
			idle := time.Since(r.lastUsed)
			delete(c.records, k)
			c.hooks.EntryEvicted(k, idle)
		}
	}
	c.mu.Unlock()
}
