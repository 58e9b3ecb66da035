package tmpstore

import (
	"context"
	"testing"
	"time"

	"github.com/Drolfothesgnir/bbpost/util"
	"github.com/stretchr/testify/require"
)

func TestRenderKey(t *testing.T) {
	updated := time.Unix(1700000000, 0)

	testCases := []struct {
		name string
		key  RenderKey
		want string
	}{
		{
			name: "Guest",
			key:  RenderKey{PostID: 7, UpdatedAt: updated, Format: "html"},
			want: "render:7:1700000000:html:guest:0",
		},
		{
			name: "Staff",
			key:  RenderKey{PostID: 7, UpdatedAt: updated, Format: "plain", Role: "staff", ViewerID: 12},
			want: "render:7:1700000000:plain:staff:12",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.key.String())
		})
	}
}

// newTestStore connects to the Redis from REDIS_ADDRESS, the test is skipped when none is reachable.
func newTestStore(t *testing.T) Store {
	t.Helper()

	if testing.Short() {
		t.Skip()
	}

	addr := "localhost:6379"
	if config, err := util.LoadConfig("../"); err == nil && config.RedisAddress != "" {
		addr = config.RedisAddress
	}

	store := NewStore(&util.Config{RedisAddress: addr}).(*RedisStore)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := store.client.Ping(ctx).Err(); err != nil {
		store.Close()
		t.Skipf("redis is not available at %s: %v", addr, err)
	}

	t.Cleanup(func() { store.Close() })

	return store
}

func TestRenderCache(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key := RenderKey{
		PostID:    util.RandomInt(1, 1<<40),
		UpdatedAt: time.Now(),
		Format:    "html",
	}

	_, err := store.GetRender(ctx, key)
	require.ErrorIs(t, err, ErrCacheMiss)

	data := []byte(`{"format":"html","html":"<b>x</b>"}`)
	require.NoError(t, store.SaveRender(ctx, key, data, time.Minute))

	got, err := store.GetRender(ctx, key)
	require.NoError(t, err)
	require.Equal(t, data, got)

	// another reader gets another rendition
	other := key
	other.Role = "staff"
	_, err = store.GetRender(ctx, other)
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestRenderCache_Expires(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key := RenderKey{PostID: util.RandomInt(1, 1<<40), Format: "plain"}
	require.NoError(t, store.SaveRender(ctx, key, []byte("x"), 50*time.Millisecond))

	require.Eventually(t, func() bool {
		_, err := store.GetRender(ctx, key)
		return err == ErrCacheMiss
	}, 2*time.Second, 20*time.Millisecond)
}
