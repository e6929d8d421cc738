// Package filefetch fetches assets from a filesystem. Keys are paths
// relative to the root fs.FS (use os.DirFS for an on-disk asset dir, or
// an embed.FS for bundled assets).
package filefetch

import (
	"context"
	"io/fs"

	"github.com/unkn0wn-root/assetcache"
	"github.com/unkn0wn-root/assetcache/fetch"
)

type Fetcher[H any] struct {
	fsys   fs.FS
	handle fetch.Handler[H]
}

var _ assetcache.Fetcher[[]byte] = (*Fetcher[[]byte])(nil)

func New[H any](fsys fs.FS, h fetch.Handler[H]) *Fetcher[H] {
	return &Fetcher[H]{fsys: fsys, handle: h}
}

// Fetch reads and decodes the file at key. fs.File reads are not
// interruptible, so ctx is only checked before the read starts.
func (f *Fetcher[H]) Fetch(ctx context.Context, key string) (H, error) {
	var zero H
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	file, err := f.fsys.Open(key)
	if err != nil {
		return zero, err
	}
	defer file.Close()

	return f.handle(key, "", file)
}
