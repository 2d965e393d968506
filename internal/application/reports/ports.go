package reports

import (
	"context"
	"time"
)

// Row una fila del reporte de revisión.
type Row struct {
	DocumentID string
	VendorName string
	Filename   string
	Category   string
	Status     string
	UploadDate time.Time
	ReviewedAt *time.Time
}

// Totals conteos por estado de las filas del reporte.
type Totals struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}

// Report contenido a renderizar, ya filtrado por la visibilidad del solicitante.
type Report struct {
	Title       string
	GeneratedAt time.Time
	RequestedBy string // email o nombre del solicitante
	Role        string
	Rows        []Row
	Totals      Totals
}

// Renderer convierte un Report en un archivo descargable (PDF, XLSX).
type Renderer interface {
	Render(ctx context.Context, r *Report) ([]byte, error)
	ContentType() string
	Extension() string
}
