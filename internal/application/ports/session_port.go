package ports

import (
	"context"
	"time"

	"github.com/micla/access-console/internal/domain/entity"
)

// SessionStore persistencia de sesiones por id opaco (memoria o Redis).
type SessionStore interface {
	// Get devuelve domain.ErrNoSession si el id no existe o ya venció su ttl.
	Get(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, s *entity.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
