// Package session servicio de sesión inyectable: lectura, escritura, borrado y
// suscripción a cambios. Lo usan el guard, las llamadas autenticadas y la
// superficie de notificaciones (que cancela sus timers al cerrar la sesión).
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/micla/access-console/internal/application/ports"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
	"github.com/micla/access-console/pkg/logger"
)

// EventKind tipo de cambio de sesión.
type EventKind int

const (
	Written EventKind = iota + 1
	Cleared
)

func (k EventKind) String() string {
	switch k {
	case Written:
		return "written"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event cambio publicado a los suscriptores. Session es nil en Cleared.
type Event struct {
	Kind      EventKind
	SessionID string
	Session   *entity.Session
}

// Service envuelve el store con ttl, reloj y suscripciones.
type Service struct {
	store ports.SessionStore
	ttl   time.Duration
	now   func() time.Time
	log   *logger.Logger

	mu     sync.RWMutex
	subs   map[int]func(Event)
	nextID int
}

// NewService crea el servicio. ttl es el tope de vida en el store; si el token vence
// antes se usa el vencimiento del token.
func NewService(store ports.SessionStore, ttl time.Duration, now func() time.Time, log *logger.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store: store,
		ttl:   ttl,
		now:   now,
		log:   log.Named("session"),
		subs:  make(map[int]func(Event)),
	}
}

// Now reloj del servicio.
func (s *Service) Now() time.Time { return s.now() }

// Read devuelve la sesión id o domain.ErrNoSession.
func (s *Service) Read(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		return nil, domain.ErrNoSession
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return nil, err
		}
		return nil, fmt.Errorf("session: leer: %w", err)
	}
	return sess, nil
}

// Write guarda sess (asigna id si no tiene) y publica Written.
func (s *Service) Write(ctx context.Context, sess *entity.Session) (*entity.Session, error) {
	if sess == nil {
		return nil, fmt.Errorf("session: sesión nil")
	}
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	ttl := s.ttl
	if !sess.ExpiresAt.IsZero() {
		if left := sess.ExpiresAt.Sub(s.now()); left < ttl {
			ttl = left
		}
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session: token ya vencido")
	}
	if err := s.store.Save(ctx, sess, ttl); err != nil {
		return nil, fmt.Errorf("session: guardar: %w", err)
	}
	s.log.Debug().Str("session_id", sess.ID).Str("user_type", sess.UserType).Dur("ttl", ttl).Msg("sesión guardada")
	s.publish(Event{Kind: Written, SessionID: sess.ID, Session: sess})
	return sess, nil
}

// Clear borra la sesión id y publica Cleared (también si ya no existía).
func (s *Service) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("session: borrar: %w", err)
	}
	s.log.Debug().Str("session_id", id).Msg("sesión borrada")
	s.publish(Event{Kind: Cleared, SessionID: id})
	return nil
}

// Subscribe registra fn para cada cambio. La función devuelta cancela la suscripción.
// fn se invoca de forma síncrona en la goroutine que hizo el cambio.
func (s *Service) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Service) publish(ev Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}
