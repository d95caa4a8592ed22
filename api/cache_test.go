package api

import "testing"

func TestSearchGraphCacheKeyIsStableAndNamespaced(t *testing.T) {
	a := searchGraphCacheKey("boulder", "running")
	b := searchGraphCacheKey("boulder", "running")
	c := searchGraphCacheKey("boulder", "cycling")

	if a != b {
		t.Fatalf("expected identical inputs to produce identical keys, got %q and %q", a, b)
	}
	if a == c {
		t.Fatalf("expected distinct activities to produce distinct keys, got %q for both", a)
	}
}
