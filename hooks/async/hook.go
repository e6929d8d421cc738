// Package asynchook decouples hook sinks from the cache's hot paths: events
// are enqueued onto a bounded queue and delivered by worker goroutines.
// When the queue is full, events are dropped rather than blocking a load.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{EvictEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := assetcache.New[image.Image](assetcache.Options[image.Image]{
//	    Fetcher: httpfetch.New(nil, fetch.Image),
//	    Hooks:   hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"time"

	"github.com/unkn0wn-root/assetcache"
)

type Hooks struct {
	inner assetcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ assetcache.Hooks = (*Hooks)(nil)

func New(inner assetcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) EntryEvicted(k string, idle time.Duration) {
	h.try(func() { h.inner.EntryEvicted(k, idle) })
}
func (h *Hooks) LoadTimedOut(k string, after time.Duration) {
	h.try(func() { h.inner.LoadTimedOut(k, after) })
}
func (h *Hooks) StaleCompletionDiscarded(k string) {
	h.try(func() { h.inner.StaleCompletionDiscarded(k) })
}
func (h *Hooks) FetchFailed(k string, err error) { h.try(func() { h.inner.FetchFailed(k, err) }) }
func (h *Hooks) StoreSelfHeal(k, r string)       { h.try(func() { h.inner.StoreSelfHeal(k, r) }) }
func (h *Hooks) StoreSetRejected(k string)       { h.try(func() { h.inner.StoreSetRejected(k) }) }
