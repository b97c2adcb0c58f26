package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micla/access-console/internal/application/session"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
	"github.com/micla/access-console/internal/infrastructure/sessionstore"
)

var now = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return now }

func newService(ttl time.Duration) *session.Service {
	return session.NewService(sessionstore.NewMemory(fixedNow), ttl, fixedNow, nil)
}

func TestWrite_AsignaIDYPublica(t *testing.T) {
	svc := newService(time.Hour)
	ctx := context.Background()

	var events []session.Event
	unsubscribe := svc.Subscribe(func(ev session.Event) { events = append(events, ev) })
	defer unsubscribe()

	sess, err := svc.Write(ctx, &entity.Session{AccessToken: "tok", UserType: entity.RoleUser, ExpiresAt: now.Add(30 * time.Minute)})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)

	require.Len(t, events, 1)
	assert.Equal(t, session.Written, events[0].Kind)
	assert.Equal(t, sess.ID, events[0].SessionID)

	got, err := svc.Read(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.AccessToken)
}

func TestWrite_TokenVencidoSeRechaza(t *testing.T) {
	svc := newService(time.Hour)

	_, err := svc.Write(context.Background(), &entity.Session{AccessToken: "tok", ExpiresAt: now.Add(-time.Second)})
	assert.Error(t, err)
}

func TestClear_BorraYPublica(t *testing.T) {
	svc := newService(time.Hour)
	ctx := context.Background()

	sess, err := svc.Write(ctx, &entity.Session{AccessToken: "tok", ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)

	var cleared []string
	svc.Subscribe(func(ev session.Event) {
		if ev.Kind == session.Cleared {
			cleared = append(cleared, ev.SessionID)
		}
	})

	require.NoError(t, svc.Clear(ctx, sess.ID))
	assert.Equal(t, []string{sess.ID}, cleared)

	_, err = svc.Read(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestRead_IDVacio(t *testing.T) {
	_, err := newService(time.Hour).Read(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestSubscribe_CancelarDejaDeNotificar(t *testing.T) {
	svc := newService(time.Hour)
	ctx := context.Background()

	calls := 0
	unsubscribe := svc.Subscribe(func(session.Event) { calls++ })
	unsubscribe()
	unsubscribe()

	_, err := svc.Write(ctx, &entity.Session{AccessToken: "tok", ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
}
