package export

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/micla/access-console/internal/application/ports"
	"github.com/micla/access-console/internal/domain/entity"
)

var _ ports.DocumentExporter = (*PDFExporter)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Exporter ──────────────────────────────────────────────────────────────────

// PDFExporter exporta la grilla a un PDF A4 apaisado. Solo incluye las columnas
// principales; el XLSX lleva todas.
type PDFExporter struct {
	now func() time.Time
}

// NewPDFExporter construye el exportador; now fecha la cabecera.
func NewPDFExporter(now func() time.Time) *PDFExporter {
	if now == nil {
		now = time.Now
	}
	return &PDFExporter{now: now}
}

func (e *PDFExporter) ContentType() string { return "application/pdf" }

func (e *PDFExporter) Extension() string { return "pdf" }

// Export genera el documento y devuelve sus bytes.
func (e *PDFExporter) Export(rows []entity.Row) ([]byte, error) {
	cols := pdfColumns()
	grid := 0
	for _, c := range cols {
		grid += c.pdf
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(grid).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Access permissions", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(e.now(), len(rows), grid))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(cols))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range rows {
		m.AddRows(tableRow(cols, r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(at time.Time, total, grid int) core.Row {
	return row.New(14).Add(
		col.New(grid).Add(
			text.New("Access permissions", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %d rows", at.Format("02/01/2006 15:04"), total), props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(cols []column) core.Row {
	r := row.New(8)
	for _, c := range cols {
		r.Add(col.New(c.pdf).Add(text.New(title(c.key), props.Text{
			Style: fontstyle.Bold, Size: 7, Align: align.Left,
			Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}

func tableRow(cols []column, data entity.Row) core.Row {
	r := row.New(6)
	for _, c := range cols {
		r.Add(col.New(c.pdf).Add(text.New(c.value(data), props.Text{
			Size: 7, Align: align.Left, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}
