package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hi8esh/askziva/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	stats := &domain.HistoryStats{Lowest: 38999, Average: 42500}
	if err := c.Set(ctx, "history:oneplus 13r", stats, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, err := c.Get(ctx, "history:oneplus 13r")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	got, ok := value.(*domain.HistoryStats)
	if !ok {
		t.Fatalf("Get() returned %T, want *domain.HistoryStats", value)
	}
	if got.Lowest != 38999 || got.Average != 42500 {
		t.Errorf("Get() = %+v, want %+v", got, stats)
	}
}

func TestMemoryCache_MissingKey(t *testing.T) {
	c := NewMemoryCache()

	_, err := c.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "short", "value", 10*time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after expiry error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "key", "value", time.Minute)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := c.Get(ctx, "key"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after delete error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%10)
			c.Set(ctx, key, i, time.Minute)
			c.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	if size := c.Size(); size != 10 {
		t.Errorf("Size() = %d, want 10", size)
	}
}
