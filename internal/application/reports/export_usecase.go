// Package reports exporta el listado de documentos visible para el llamador.
package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/vendordocs-api/internal/application/documents"
	"github.com/jhoicas/vendordocs-api/internal/application/presenter"
	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/access"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
)

// Formatos soportados.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// File resultado de una exportación.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportUseCase genera el reporte de revisión en el formato pedido.
type ExportUseCase struct {
	docs      *documents.UseCase
	users     repository.UserRepository
	renderers map[string]Renderer
	now       func() time.Time
}

// NewExportUseCase construye el caso de uso. renderers se indexa por formato ("pdf", "xlsx").
func NewExportUseCase(docs *documents.UseCase, users repository.UserRepository, renderers map[string]Renderer) *ExportUseCase {
	return &ExportUseCase{docs: docs, users: users, renderers: renderers, now: func() time.Time { return time.Now().UTC() }}
}

// Export renderiza los documentos visibles para caller. ErrInvalidInput si el formato no existe.
func (uc *ExportUseCase) Export(ctx context.Context, caller access.Subject, format string) (*File, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatPDF
	}
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}
	docs, err := uc.docs.Visible(ctx, caller, access.ActionExportDocuments)
	if err != nil {
		return nil, err
	}
	annotated, err := presenter.Documents(ctx, uc.users, docs)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	report := &Report{
		Title:       "Reporte de revisión de documentos",
		GeneratedAt: now,
		RequestedBy: uc.requester(ctx, caller.UserID),
		Role:        caller.Role.String(),
		Rows:        make([]Row, 0, len(annotated)),
	}
	for _, d := range annotated {
		report.Rows = append(report.Rows, Row{
			DocumentID: d.ID,
			VendorName: d.VendorName,
			Filename:   d.Filename,
			Category:   d.Category,
			Status:     d.Status,
			UploadDate: d.UploadDate,
			ReviewedAt: d.ReviewedAt,
		})
		report.Totals.add(entity.DocumentStatus(d.Status))
	}

	data, err := renderer.Render(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("renderizar %s: %w", format, err)
	}
	return &File{
		Name:        fmt.Sprintf("documentos-%s.%s", now.Format("20060102-150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

func (uc *ExportUseCase) requester(ctx context.Context, userID string) string {
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil || u == nil {
		return userID
	}
	return u.Email
}

func (t *Totals) add(s entity.DocumentStatus) {
	t.Total++
	switch s {
	case entity.DocumentStatusPending:
		t.Pending++
	case entity.DocumentStatusApproved:
		t.Approved++
	case entity.DocumentStatusRejected:
		t.Rejected++
	}
}
