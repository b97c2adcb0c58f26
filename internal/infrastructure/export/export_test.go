package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/micla/access-console/internal/domain/entity"
	"github.com/micla/access-console/internal/infrastructure/export"
)

func sampleRows() []entity.Row {
	return []entity.Row{
		{
			ID: 0, Key: "RSSMRA80A01H501U/PO1/AP1/",
			FiscalCode: "RSSMRA80A01H501U", FirstName: "Mario", LastName: "Rossi",
			PONumber: "PO1", Duvri: true, Locations: []string{"Torino", "Milano"},
			PurchaseOrderValidityEndDate: entity.NewDate(2030, time.June, 1),
			ProtocolNumber:               "AP1", Plant: "Torino", Status: entity.StatusActive,
			AccessPermissionValidityEndDate: entity.NewDate(2030, time.January, 2),
			Gates:                           []int{1, 4},
		},
		{
			ID: 1, Key: "RSSMRA80A01H501U/PO2//",
			FiscalCode: "RSSMRA80A01H501U", FirstName: "Mario", LastName: "Rossi",
			PONumber:                        "PO2",
			AccessPermissionValidityEndDate: entity.Epoch,
			Gates:                           []int{},
		},
	}
}

func TestXLSX_EncabezadosYFilas(t *testing.T) {
	e := export.NewXLSXExporter()
	assert.Equal(t, "xlsx", e.Extension())

	data, err := e.Export(sampleRows())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Equal(t, "Fiscal Code", header[0])
	assert.Contains(t, header, "PO Number")
	assert.Contains(t, header, "Access Permission Validity End Date")

	first := rows[1]
	assert.Equal(t, "RSSMRA80A01H501U", first[0])
	assert.Contains(t, first, "Torino, Milano")
	assert.Contains(t, first, "2030-01-02")
	assert.Contains(t, first, "1, 4")
	assert.Contains(t, first, "Yes")

	// La vigencia de marcador no se exporta.
	assert.NotContains(t, rows[2], "1970-01-01")
}

func TestXLSX_SinFilas(t *testing.T) {
	data, err := export.NewXLSXExporter().Export(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestPDF_GeneraDocumento(t *testing.T) {
	e := export.NewPDFExporter(func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) })
	assert.Equal(t, "application/pdf", e.ContentType())

	data, err := e.Export(sampleRows())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
