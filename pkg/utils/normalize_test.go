package utils

import "testing"

func TestNormalizeArticle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"A-123/b", "A123B"},
		{"", ""},
		{"  oc 90 ", "OC90"},
		{"W914/2", "W9142"},
		{"абв123", "123"}, // 非 ASCII 字符一律丢弃
		{"---", ""},
	}

	for _, c := range cases {
		if got := NormalizeArticle(c.in); got != c.want {
			t.Errorf("NormalizeArticle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeBrandKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bosch", "BOSCH"},
		{" bosch ", "BOSCH"},
		{"BOSCH", "BOSCH"},
		{"  ", ""},
	}

	for _, c := range cases {
		if got := NormalizeBrandKey(c.in); got != c.want {
			t.Errorf("NormalizeBrandKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBrandCache(t *testing.T) {
	cache := NewBrandCache(0)

	if _, ok := cache.Get("BOSCH"); ok {
		t.Fatal("空缓存不应命中")
	}

	cache.Set("BOSCH", 42)
	id, ok := cache.Get("BOSCH")
	if !ok || id != 42 {
		t.Fatalf("Get() = (%d, %v), want (42, true)", id, ok)
	}
}
