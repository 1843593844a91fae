package cache_test

import (
	"testing"
	"time"

	"github.com/boddenberg/firefly-engine-go/internal/infra/cache"
)

func TestCache_SetAndGet(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("key1", "value1")
	val, ok := c.Get("key1")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if val != "value1" {
		t.Errorf("expected 'value1', got '%s'", val)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	_, ok := c.Get("nonexistent")
	if ok {
		t.Fatal("expected cache miss for nonexistent key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c := cache.New[string](10 * time.Millisecond)

	c.Set("key1", "value1")
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("key1")
	if ok {
		t.Fatal("expected cache entry to be expired")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("key1", "value1")
	c.Delete("key1")

	_, ok := c.Get("key1")
	if ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestCache_SliceValues(t *testing.T) {
	c := cache.New[[]int](5 * time.Minute)

	c.Set("series", []int{1, 2, 3})
	val, ok := c.Get("series")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if len(val) != 3 {
		t.Errorf("expected 3 elements, got %d", len(val))
	}
}
