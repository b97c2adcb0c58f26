// Package notify superficie de notificaciones de las pantallas.
//
// Cada (sesión, pantalla) tiene un estado explícito: idle, pending, success, warning
// o error. Un envío mientras otro está pending se rechaza. Al terminar, el resultado
// queda visible y un timer cancelable lo devuelve a idle tras el retardo configurado.
// Los timers se cancelan al cerrar la sesión o el tablero.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/micla/access-console/internal/application/session"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/pkg/logger"
)

// State estado de la petición de una pantalla.
type State string

const (
	Idle    State = "idle"
	Pending State = "pending"
	Success State = "success"
	Warning State = "warning"
	Error   State = "error"
)

// Mensajes fijos.
const (
	NoChangesMessage = "You haven't modified any field"
	DefaultFallback  = "Request failed"
)

// Key identifica la notificación de una pantalla dentro de una sesión.
type Key struct {
	SessionID string
	Screen    string
}

// Notice lo que la pantalla debe mostrar.
type Notice struct {
	Screen  string `json:"screen"`
	State   State  `json:"state"`
	Message string `json:"message,omitempty"`
}

type entry struct {
	notice Notice
	gen    uint64
	timer  *time.Timer
}

// Board tablero de notificaciones en memoria, seguro para uso concurrente.
type Board struct {
	delay time.Duration
	log   *logger.Logger

	mu      sync.Mutex
	entries map[Key]*entry
	gen     uint64
	closed  bool
}

// NewBoard crea el tablero con el retardo de reseteo dado.
func NewBoard(delay time.Duration, log *logger.Logger) *Board {
	if log == nil {
		log = logger.Nop()
	}
	return &Board{delay: delay, log: log.Named("notify"), entries: make(map[Key]*entry)}
}

// Bind cierra las notificaciones de una sesión cuando el servicio de sesión la borra.
func (b *Board) Bind(svc *session.Service) func() {
	return svc.Subscribe(func(ev session.Event) {
		if ev.Kind == session.Cleared {
			b.CloseSession(ev.SessionID)
		}
	})
}

// Get estado actual; idle si no hay nada registrado.
func (b *Board) Get(k Key) Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e, ok := b.entries[k]; ok {
		return e.notice
	}
	return Notice{Screen: k.Screen, State: Idle}
}

// Begin marca la pantalla como pending. Devuelve domain.ErrBusy si ya lo estaba.
func (b *Board) Begin(k Key) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[k]
	if ok && e.notice.State == Pending {
		return domain.ErrBusy
	}
	if ok && e.timer != nil {
		e.timer.Stop()
	}
	b.gen++
	b.entries[k] = &entry{notice: Notice{Screen: k.Screen, State: Pending}, gen: b.gen}
	return nil
}

// Finish publica el resultado y programa la vuelta a idle.
func (b *Board) Finish(k Key, state State, message string) Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := Notice{Screen: k.Screen, State: state, Message: message}
	e, ok := b.entries[k]
	if !ok {
		if b.closed {
			return n
		}
		e = &entry{}
		b.entries[k] = e
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	b.gen++
	e.gen = b.gen
	e.notice = n
	e.timer = nil
	if !b.closed {
		gen := e.gen
		e.timer = time.AfterFunc(b.delay, func() { b.reset(k, gen) })
	}
	return n
}

// Reset vuelve la pantalla a idle en el acto (p. ej. errores de validación que se muestran inline).
func (b *Board) Reset(k Key) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e, ok := b.entries[k]; ok {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(b.entries, k)
	}
}

// reset la ejecuta el timer; solo actúa si nadie reescribió la entrada desde entonces.
func (b *Board) reset(k Key, gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e, ok := b.entries[k]; ok && e.gen == gen {
		delete(b.entries, k)
	}
}

// CloseSession descarta las notificaciones de la sesión y cancela sus timers.
func (b *Board) CloseSession(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for k, e := range b.entries {
		if k.SessionID != sessionID {
			continue
		}
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(b.entries, k)
		n++
	}
	if n > 0 {
		b.log.Debug().Str("session_id", sessionID).Int("notices", n).Msg("notificaciones descartadas")
	}
}

// Close cancela todos los timers; se llama al apagar el servidor.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k, e := range b.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(b.entries, k)
	}
	b.closed = true
}

// Pending número de pantallas con un envío en curso.
func (b *Board) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.entries {
		if e.notice.State == Pending {
			n++
		}
	}
	return n
}

// Submit ejecuta la acción de una pantalla y traduce su resultado a notificación:
//   - éxito: success con el mensaje devuelto por fn.
//   - domain.ErrNoChanges: warning "You haven't modified any field".
//   - *domain.ValidationError: sin notificación (errores inline), vuelve a idle.
//   - *domain.APIError con detail: error con ese detail; si no, error con fallback.
//
// El error de fn se devuelve tal cual para que el llamador elija el status HTTP.
func (b *Board) Submit(ctx context.Context, k Key, fallback string, fn func(context.Context) (string, error)) (Notice, error) {
	if err := b.Begin(k); err != nil {
		return b.Get(k), err
	}
	// Un panic en fn no deja la pantalla en pending para siempre.
	defer func() {
		if p := recover(); p != nil {
			b.Finish(k, Error, Detail(nil, fallback))
			panic(p)
		}
	}()
	msg, err := fn(ctx)
	if err == nil {
		return b.Finish(k, Success, msg), nil
	}

	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNoChanges):
		return b.Finish(k, Warning, NoChangesMessage), err
	case errors.As(err, &verr):
		b.Reset(k)
		return Notice{Screen: k.Screen, State: Idle}, err
	default:
		logger.FromContext(ctx, b.log).Debug().Err(err).Str("screen", k.Screen).Msg("envío fallido")
		return b.Finish(k, Error, Detail(err, fallback)), err
	}
}

// Detail mensaje a mostrar para err: el detail del backend si lo hay, si no fallback.
func Detail(err error, fallback string) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if fallback == "" {
		return DefaultFallback
	}
	return fallback
}
