package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/micla/access-console/internal/application/dto"
	"github.com/micla/access-console/internal/application/grid"
	"github.com/micla/access-console/internal/application/ports"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
)

// DashboardUseCase grilla de administración: todos los empleados aplanados en filas.
//
// Cada llamada pide GET /all y vuelve a aplanar; las filas no se guardan.
type DashboardUseCase struct {
	gw        ports.EmployeeGateway
	flattener *grid.Flattener
	exporters map[string]ports.DocumentExporter
}

// NewDashboardUseCase construye el caso de uso; los exportadores se indexan por extensión.
func NewDashboardUseCase(gw ports.EmployeeGateway, f *grid.Flattener, exporters ...ports.DocumentExporter) *DashboardUseCase {
	byExt := make(map[string]ports.DocumentExporter, len(exporters))
	for _, e := range exporters {
		byExt[e.Extension()] = e
	}
	return &DashboardUseCase{gw: gw, flattener: f, exporters: byExt}
}

// Rows filas de la grilla.
func (uc *DashboardUseCase) Rows(ctx context.Context, token string) (*dto.RowsResponse, error) {
	employees, err := uc.gw.ListEmployees(ctx, token)
	if err != nil {
		return nil, err
	}
	rows := uc.flattener.Flatten(employees)
	return &dto.RowsResponse{Rows: rows, Total: len(rows)}, nil
}

// Formats extensiones de exportación disponibles, ordenadas.
func (uc *DashboardUseCase) Formats() []string {
	out := make([]string, 0, len(uc.exporters))
	for ext := range uc.exporters {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Export genera el archivo de la grilla en el formato pedido (xlsx o pdf).
func (uc *DashboardUseCase) Export(ctx context.Context, token, format string) (*entity.Document, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	exp, ok := uc.exporters[format]
	if !ok {
		return nil, domain.NewValidationError("format", "Format must be one of: "+strings.Join(uc.Formats(), ", "))
	}
	employees, err := uc.gw.ListEmployees(ctx, token)
	if err != nil {
		return nil, err
	}
	data, err := exp.Export(uc.flattener.Flatten(employees))
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	return &entity.Document{
		Field:       "export",
		Filename:    "access_permissions." + exp.Extension(),
		ContentType: exp.ContentType(),
		Data:        data,
	}, nil
}

// FiscalCodes códigos fiscales y sus órdenes para el formulario "Add Access Permission".
func (uc *DashboardUseCase) FiscalCodes(ctx context.Context, token string) (*dto.FiscalCodesResponse, error) {
	employees, err := uc.gw.ListEmployees(ctx, token)
	if err != nil {
		return nil, err
	}
	codes, byCode := grid.PurchaseOrdersByFiscalCode(employees)
	return &dto.FiscalCodesResponse{FiscalCodes: codes, PurchaseOrders: byCode}, nil
}
