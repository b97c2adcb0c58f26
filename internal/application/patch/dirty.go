// Package patch construye los cuerpos de actualización parcial a partir de los valores
// completos de un formulario y del conjunto de campos que el usuario modificó.
//
// Cada entidad tiene su propio tipo de patch con un campo puntero por atributo editable:
// un campo nil no viaja. El mapeo campo de formulario -> campo de patch es explícito
// por entidad.
package patch

import (
	"sort"

	"github.com/micla/access-console/internal/domain"
)

// Dirty conjunto de campos modificados de un formulario.
type Dirty[F ~string] struct {
	set map[F]struct{}
}

// NewDirty construye el conjunto con los campos dados.
func NewDirty[F ~string](fields ...F) Dirty[F] {
	d := Dirty[F]{set: make(map[F]struct{}, len(fields))}
	for _, f := range fields {
		d.set[f] = struct{}{}
	}
	return d
}

// ParseDirty interpreta los nombres recibidos en la petición; un nombre fuera de known
// es un error de validación del campo "dirty".
func ParseDirty[F ~string](names []string, known []F) (Dirty[F], error) {
	allowed := make(map[F]struct{}, len(known))
	for _, k := range known {
		allowed[k] = struct{}{}
	}
	d := Dirty[F]{set: make(map[F]struct{}, len(names))}
	for _, n := range names {
		f := F(n)
		if _, ok := allowed[f]; !ok {
			return Dirty[F]{}, domain.NewValidationError("dirty", "Unknown field: "+n)
		}
		d.set[f] = struct{}{}
	}
	return d, nil
}

// Has indica si f fue modificado.
func (d Dirty[F]) Has(f F) bool {
	_, ok := d.set[f]
	return ok
}

// Len número de campos modificados.
func (d Dirty[F]) Len() int { return len(d.set) }

// Empty indica que no hay nada modificado.
func (d Dirty[F]) Empty() bool { return len(d.set) == 0 }

// Fields campos modificados en orden alfabético.
func (d Dirty[F]) Fields() []F {
	out := make([]F, 0, len(d.set))
	for f := range d.set {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func ptr[T any](v T) *T { return &v }
