package util

import "testing"

func TestExt(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"hero.png", "png"},
		{"HERO.PNG", "png"},
		{"a/b/c.tile.webp", "webp"},
		{"cdn/hero.png?v=42", "png"},
		{"cdn/hero.jpg#frag", "jpg"},
		{"noext", ""},
		{"trailing.", ""},
		{"", ""},
		{"dir.d/noext", ""},
	}
	for _, tc := range cases {
		if got := Ext(tc.key); got != tc.want {
			t.Fatalf("Ext(%q)=%q want %q", tc.key, got, tc.want)
		}
	}
}

func TestStoreKeyIsNamespaced(t *testing.T) {
	if got := StoreKey("ui", "hero.png"); got != "asset:ui:hero.png" {
		t.Fatalf("StoreKey=%q", got)
	}
	if StoreKey("ui", "a.png") == StoreKey("hud", "a.png") {
		t.Fatalf("namespaces must not collide")
	}
}
