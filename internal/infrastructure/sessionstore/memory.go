package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/micla/access-console/internal/application/ports"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
)

type memoryEntry struct {
	session   entity.Session
	expiresAt time.Time
}

// Memory store de sesiones en memoria. Solo sirve con una instancia de la consola.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory crea el store. now nil usa time.Now.
func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{entries: make(map[string]memoryEntry), now: now}
}

// Get devuelve una copia de la sesión; las vencidas se eliminan al leerlas.
func (m *Memory) Get(_ context.Context, id string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrNoSession
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return nil, domain.ErrNoSession
	}
	s := e.session
	return &s, nil
}

// Save guarda una copia de s durante ttl.
func (m *Memory) Save(_ context.Context, s *entity.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID] = memoryEntry{session: *s, expiresAt: m.now().Add(ttl)}
	return nil
}

// Delete elimina la sesión; no falla si no existe.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Sweep elimina las sesiones vencidas y devuelve cuántas quitó.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

// RunSweeper barre el store cada interval hasta que ctx se cancela.
func (m *Memory) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}

var _ ports.SessionStore = (*Memory)(nil)
