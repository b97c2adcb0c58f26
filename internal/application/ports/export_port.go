package ports

import "github.com/micla/access-console/internal/domain/entity"

// DocumentExporter genera un archivo descargable a partir de las filas de la grilla.
type DocumentExporter interface {
	Export(rows []entity.Row) ([]byte, error)
	ContentType() string
	Extension() string
}
