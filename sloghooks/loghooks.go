// Package sloghooks is a Hooks implementation that logs events through
// log/slog, with sampling on the hot events so a thrashing cache cannot
// flood the logs.
package sloghooks

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/assetcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	EvictEvery uint64
	StaleEvery uint64
	// Optional key redactor for logs (e.g. hash signed URLs). Defaults to
	// the raw key; asset keys are rarely sensitive.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	evictCtr atomic.Uint64
	staleCtr atomic.Uint64
}

var _ assetcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	return k
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) EntryEvicted(key string, idle time.Duration) {
	if h.l == nil || !sample(h.opts.EvictEvery, &h.evictCtr) {
		return
	}
	h.l.Debug("assetcache.entry_evicted",
		"key", h.redact(key),
		"idle", idle)
}

func (h *Hooks) LoadTimedOut(key string, after time.Duration) {
	if h.l == nil {
		return
	}
	h.l.Warn("assetcache.load_timed_out",
		"key", h.redact(key),
		"after", after)
}

func (h *Hooks) StaleCompletionDiscarded(key string) {
	if h.l == nil || !sample(h.opts.StaleEvery, &h.staleCtr) {
		return
	}
	h.l.Debug("assetcache.stale_completion_discarded",
		"key", h.redact(key))
}

func (h *Hooks) FetchFailed(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("assetcache.fetch_failed",
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) StoreSelfHeal(key, reason string) {
	if h.l == nil {
		return
	}
	h.l.Debug("assetcache.store_self_heal",
		"key", h.redact(key),
		"reason", reason)
}

func (h *Hooks) StoreSetRejected(key string) {
	if h.l == nil {
		return
	}
	h.l.Warn("assetcache.store_set_rejected",
		"key", h.redact(key))
}
