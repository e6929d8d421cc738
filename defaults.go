package assetcache

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// defaultFormats is the accepted extension set when Options.Formats is nil.
var defaultFormats = []string{"png", "jpg", "jpeg", "webp", "svg"}
