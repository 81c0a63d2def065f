package cache_test

import (
	"context"
	"testing"

	"github.com/mightytheif/sakany/internal/cache"
)

func TestKey_StableUnderParamOrder(t *testing.T) {
	a := cache.Key("search", map[string]string{"type": "apartment", "price_max": "500000"})
	b := cache.Key("search", map[string]string{"price_max": "500000", "type": "apartment"})
	if a != b {
		t.Fatalf("same params produced different keys: %q vs %q", a, b)
	}
}

func TestKey_DistinguishesParams(t *testing.T) {
	a := cache.Key("search", map[string]string{"type": "apartment"})
	b := cache.Key("search", map[string]string{"type": "villa"})
	if a == b {
		t.Fatalf("different params produced the same key: %q", a)
	}
	if c := cache.Key("featured", map[string]string{"type": "apartment"}); c == a {
		t.Fatalf("different prefixes produced the same key: %q", c)
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *cache.Cache
	ctx := context.Background()

	var dest []string
	hit, err := c.Get(ctx, "k", &dest)
	if err != nil || hit {
		t.Fatalf("nil cache Get: hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, "k", []string{"v"}); err != nil {
		t.Fatalf("nil cache Set: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil cache Close: %v", err)
	}
}

func TestNew_DisabledWithoutAddr(t *testing.T) {
	if c := cache.New("", "", 0); c != nil {
		t.Fatalf("expected nil cache when no addr configured")
	}
}
