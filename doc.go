// Package assetcache implements a loading cache for game-client assets
// (sprites, textures, raw binary blobs) keyed by URL or path. Concurrent
// requests for the same key are coalesced into one underlying fetch; every
// load races a per-attempt timeout; resident decoded handles are bounded
// by LRU eviction on last-use recency.
//
// Components:
//   - Fetcher[H]: the only source of I/O. Given a key, produces a decoded
//     handle H or fails (e.g. HTTP image fetch, filesystem read).
//   - Store: optional second-level byte store with TTL (e.g. Ristretto,
//     BigCache, Redis) holding encoded handles that survive LRU eviction
//     of the in-memory tier.
//   - Codec[H]: (de)serializes H <-> []byte for the Store tier.
//
// Load path per key:
//
//	records hit -> handle (refreshes recency, no I/O)
//	pending hit -> join the in-flight attempt (shared outcome)
//	miss        -> store tier (if configured), then Fetcher, racing Timeout
//
// A fetch result arriving after its attempt has already been settled (by
// timeout or Clear) is stale: it is discarded and never mutates the
// resident set.
package assetcache
