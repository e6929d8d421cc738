package util

import "strings"

// Ext returns the lowercased extension suffix of an asset key, without the
// dot. URL query and fragment parts are stripped first, so "a.png?v=2"
// yields "png". Returns "" when the key has no extension.
func Ext(key string) string {
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		key = key[i+1:] // dots in directory components are not extensions
	}
	i := strings.LastIndexByte(key, '.')
	if i < 0 || i == len(key)-1 {
		return ""
	}
	return strings.ToLower(key[i+1:])
}

// StoreKey builds the namespaced store-tier key for an asset key.
// The "asset:<ns>:" keyspace is owned by assetcache.
func StoreKey(ns, key string) string {
	return "asset:" + ns + ":" + key
}
