// Package xlsx genera el reporte de revisión como libro Excel.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/vendordocs-api/internal/application/reports"
)

const (
	sheetDocuments = "Documentos"
	sheetSummary   = "Resumen"
)

var documentHeader = []interface{}{"ID", "Proveedor", "Archivo", "Categoría", "Estado", "Subido", "Revisado"}

// ExcelReportGenerator implementa reports.Renderer usando excelize.
type ExcelReportGenerator struct{}

// NewExcelReportGenerator construye el generador.
func NewExcelReportGenerator() *ExcelReportGenerator { return &ExcelReportGenerator{} }

// ContentType MIME del archivo generado.
func (g *ExcelReportGenerator) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension extensión del archivo generado.
func (g *ExcelReportGenerator) Extension() string { return "xlsx" }

// Render arma dos hojas: Documentos (una fila por documento) y Resumen (conteos).
func (g *ExcelReportGenerator) Render(_ context.Context, r *reports.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetDocuments); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}

	if err := f.SetSheetRow(sheetDocuments, "A1", &documentHeader); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	if err := f.SetCellStyle(sheetDocuments, "A1", "G1", headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}
	for i, d := range r.Rows {
		reviewed := ""
		if d.ReviewedAt != nil {
			reviewed = d.ReviewedAt.UTC().Format("2006-01-02 15:04")
		}
		values := []interface{}{
			d.DocumentID, d.VendorName, d.Filename, d.Category, d.Status,
			d.UploadDate.UTC().Format("2006-01-02 15:04"), reviewed,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetDocuments, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(sheetDocuments, "A", "A", 38); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetDocuments, "B", "C", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetDocuments, "D", "G", 16); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: hoja resumen: %w", err)
	}
	summary := [][]interface{}{
		{"Reporte", r.Title},
		{"Generado", r.GeneratedAt.UTC().Format("2006-01-02 15:04")},
		{"Solicitado por", r.RequestedBy},
		{"Rol", r.Role},
		{"Total", r.Totals.Total},
		{"Pendientes", r.Totals.Pending},
		{"Aprobados", r.Totals.Approved},
		{"Rechazados", r.Totals.Rejected},
	}
	for i, values := range summary {
		values := values
		if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", i+1), &values); err != nil {
			return nil, fmt.Errorf("xlsx: resumen: %w", err)
		}
	}
	if err := f.SetColWidth(sheetSummary, "A", "B", 30); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
