package entity

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// DateLayout formato de fecha en los formularios y en el cable.
const DateLayout = "2006-01-02"

// Layouts aceptados al leer fechas del backend (datetime de Python sin zona, RFC 3339 o solo fecha).
var dateLayouts = []string{
	DateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	time.RFC3339,
	time.RFC3339Nano,
}

// Epoch fecha por defecto de la vigencia de un permiso de acceso ausente.
var Epoch = NewDate(1970, time.January, 1)

// Date fecha de calendario (sin hora) en UTC.
type Date struct {
	t time.Time
}

// NewDate construye una fecha de calendario.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf trunca un instante a su fecha de calendario (en la zona del instante).
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate interpreta una fecha en cualquiera de los formatos aceptados.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("fecha inválida: %q", s)
}

// IsZero indica si la fecha no fue informada.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time devuelve la medianoche UTC de la fecha.
func (d Date) Time() time.Time { return d.t }

// After indica si d es estrictamente posterior a o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Before indica si d es estrictamente anterior a o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// Equal compara dos fechas de calendario.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalJSON serializa como "YYYY-MM-DD"; la fecha vacía se serializa como null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON acepta null, "" y los formatos de dateLayouts.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
