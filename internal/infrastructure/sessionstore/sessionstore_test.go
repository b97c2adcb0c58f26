package sessionstore_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micla/access-console/internal/application/ports"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
	"github.com/micla/access-console/internal/infrastructure/sessionstore"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func sampleSession(id string) *entity.Session {
	return &entity.Session{
		ID:          id,
		AccessToken: "tok",
		UserType:    entity.RoleAdmin,
		FiscalCode:  "RSSMRA85T10A562S",
		UserName:    "mrossi",
		ExpiresAt:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// exerciseStore contrato común de los stores.
func exerciseStore(t *testing.T, store ports.SessionStore) {
	ctx := context.Background()
	id := uuid.New().String()

	_, err := store.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNoSession)

	require.NoError(t, store.Save(ctx, sampleSession(id), time.Minute))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "mrossi", got.UserName)
	assert.Equal(t, entity.RoleAdmin, got.UserType)
	assert.True(t, got.ExpiresAt.Equal(sampleSession(id).ExpiresAt))

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNoSession)

	// Borrar dos veces no es error.
	assert.NoError(t, store.Delete(ctx, id))
}

func TestMemory_Contrato(t *testing.T) {
	exerciseStore(t, sessionstore.NewMemory(nil))
}

func TestMemory_VenceConElTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	store := sessionstore.NewMemory(clock.Now)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession("a"), time.Minute))
	require.NoError(t, store.Save(ctx, sampleSession("b"), time.Hour))

	clock.Advance(time.Minute)

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNoSession)
	_, err = store.Get(ctx, "b")
	assert.NoError(t, err)

	clock.Advance(time.Hour)
	assert.Equal(t, 1, store.Sweep())
}

func TestMemory_DevuelveCopias(t *testing.T) {
	store := sessionstore.NewMemory(nil)
	ctx := context.Background()

	s := sampleSession("a")
	require.NoError(t, store.Save(ctx, s, time.Minute))
	s.UserType = entity.RoleUser

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, got.UserType)
}

// Requiere un Redis real: REDIS_ADDR=localhost:6379 go test ./...
func TestRedis_Contrato(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido")
	}
	store, err := sessionstore.NewRedis(context.Background(), sessionstore.RedisConfig{
		Addr:      addr,
		KeyPrefix: "console:test:session:",
	})
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}
