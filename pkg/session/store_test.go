package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData(id string, seen time.Time) *Data {
	return &Data{ID: id, CreatedAt: seen, LastSeen: seen}
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(time.Hour)
	s.Set(testData("a", time.Now()))
	s.Set(nil)

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, 1, s.Count())

	// Returned records are copies.
	got.ID = "mutated"
	again, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", again.ID)

	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	_, ok = s.Get("a")
	assert.False(t, ok)
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return base.Add(2 * time.Minute) }

	s.Set(testData("stale", base))
	s.Set(testData("fresh", base.Add(90*time.Second)))

	_, ok := s.Get("stale")
	assert.False(t, ok, "stale session should be hidden")
	_, ok = s.Get("fresh")
	assert.True(t, ok)

	t.Run("touch refreshes live sessions", func(t *testing.T) {
		assert.True(t, s.Touch("fresh", base.Add(2*time.Minute)))
		got, ok := s.Get("fresh")
		require.True(t, ok)
		assert.Equal(t, base.Add(2*time.Minute), got.LastSeen)
	})

	t.Run("touch drops expired sessions", func(t *testing.T) {
		assert.False(t, s.Touch("stale", base.Add(2*time.Minute)))
		assert.Equal(t, 1, s.Count())
		assert.False(t, s.Touch("missing", base))
	})
}

func TestMemoryStore_Sweep(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	for _, id := range []string{"a", "b", "c"} {
		s.Set(testData(id, base))
	}
	s.Set(testData("d", base.Add(time.Minute)))

	assert.Equal(t, 0, s.Sweep(base.Add(time.Minute)))
	assert.Equal(t, 3, s.Sweep(base.Add(90*time.Second)))
	assert.Equal(t, 1, s.Count())
}

func TestMemoryStore_Live(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.Set(testData("stale", base))
	s.Set(testData("fresh", base.Add(time.Minute)))

	now := base.Add(90 * time.Second)
	assert.Equal(t, 2, s.Count(), "expired records stay until swept")
	assert.Equal(t, 1, s.Live(now))

	s.Sweep(now)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 1, s.Live(now))

	forever := NewMemoryStore(0)
	forever.Set(testData("old", time.Unix(0, 0)))
	assert.Equal(t, 1, forever.Live(now))
}

func TestMemoryStore_NoExpiry(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(0)
	s.Set(testData("a", time.Unix(0, 0)))

	_, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 0, s.Sweep(time.Now()))
	assert.Equal(t, time.Duration(0), s.TTL())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := New(nil)
			s.Set(d)
			s.Touch(d.ID, time.Now())
			_, _ = s.Get(d.ID)
			_ = s.Count()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Count())
}
