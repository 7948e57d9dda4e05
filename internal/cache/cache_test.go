package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := New[string]()
	c.now = func() time.Time { return now }

	c.Set("sda/removable", "1", time.Minute)
	c.Set("sda/size", "2000000", time.Second)

	v, ok := c.Get("sda/removable")
	require.True(t, ok)
	require.Equal(t, "1", v)

	now = now.Add(2 * time.Second)
	_, ok = c.Get("sda/size")
	require.False(t, ok)

	v, ok = c.Get("sda/removable")
	require.True(t, ok)
	require.Equal(t, "1", v)

	c.Set("sda/size", "4000000", time.Second)
	v, ok = c.Get("sda/size")
	require.True(t, ok)
	require.Equal(t, "4000000", v)
}

func TestCacheMiss(t *testing.T) {
	c := New[int]()
	v, ok := c.Get("a")
	require.False(t, ok)
	require.Zero(t, v)
}
