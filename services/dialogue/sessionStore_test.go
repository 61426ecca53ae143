package dialogue

import (
	"context"
	"testing"
	"time"

	"flavortable/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionStore(t *testing.T) *SessionStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, 30*time.Minute)
}

func TestSessionStore_MissingKeyIsFreshSession(t *testing.T) {
	store := newTestSessionStore(t)

	details, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, models.BookingDetails{}, details)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	saved := models.BookingDetails{
		NumberOfGuests: intPtr(4),
		Date:           strPtr("2024-05-01"),
	}
	require.NoError(t, store.Set(ctx, "sess-1", saved))

	loaded, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 4, *loaded.NumberOfGuests)
	assert.Equal(t, "2024-05-01", *loaded.Date)
	assert.Nil(t, loaded.Time)
}

func TestSessionStore_SessionsAreIndependent(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sess-a", models.BookingDetails{NumberOfGuests: intPtr(2)}))
	require.NoError(t, store.Set(ctx, "sess-b", models.BookingDetails{NumberOfGuests: intPtr(8)}))

	a, err := store.Get(ctx, "sess-a")
	require.NoError(t, err)
	b, err := store.Get(ctx, "sess-b")
	require.NoError(t, err)

	assert.Equal(t, 2, *a.NumberOfGuests)
	assert.Equal(t, 8, *b.NumberOfGuests)
}

func TestSessionStore_Clear(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sess-1", models.BookingDetails{NumberOfGuests: intPtr(4)}))
	require.NoError(t, store.Clear(ctx, "sess-1"))

	details, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingDetails{}, details)
}
