// Package httpfetch fetches assets over HTTP(S). Keys are absolute URLs.
package httpfetch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/unkn0wn-root/assetcache"
	"github.com/unkn0wn-root/assetcache/fetch"
)

type Fetcher[H any] struct {
	client *http.Client
	handle fetch.Handler[H]
}

var _ assetcache.Fetcher[[]byte] = (*Fetcher[[]byte])(nil)

// New builds an HTTP fetcher. A nil client falls back to
// http.DefaultClient; the per-attempt deadline comes from the cache's
// Timeout via ctx, so the client needs no timeout of its own.
func New[H any](client *http.Client, h fetch.Handler[H]) *Fetcher[H] {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher[H]{client: client, handle: h}
}

func (f *Fetcher[H]) Fetch(ctx context.Context, key string) (H, error) {
	var zero H
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key, nil)
	if err != nil {
		return zero, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return zero, fmt.Errorf("httpfetch: GET %s: %s", key, resp.Status)
	}
	return f.handle(key, resp.Header.Get("Content-Type"), resp.Body)
}
