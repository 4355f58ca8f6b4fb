package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type poster struct {
	URL string `json:"url"`
}

func TestCache_MemoryOnly(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()

	var got poster
	ok, err := c.GetJSON(ctx, "poster:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetJSON(ctx, "poster:1", poster{URL: "http://img/a.jpg"}, time.Hour))

	ok, err = c.GetJSON(ctx, "poster:1", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "http://img/a.jpg", got.URL)

	require.NoError(t, c.Delete(ctx, "poster:1"))
	ok, err = c.GetJSON(ctx, "poster:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Expires(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.SetJSON(ctx, "k", poster{URL: "x"}, 50*time.Millisecond))

	assert.Eventually(t, func() bool {
		var p poster
		ok, _ := c.GetJSON(ctx, "k", &p)
		return !ok
	}, 3*time.Second, 50*time.Millisecond)
}

func TestConnectRedis_EmptyAddr(t *testing.T) {
	rdb, err := ConnectRedis(context.Background(), "", "")
	require.NoError(t, err)
	assert.Nil(t, rdb)
}
