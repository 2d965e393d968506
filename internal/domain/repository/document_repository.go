package repository

import (
	"context"
	"time"

	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
)

// DocumentFilter alcance de una consulta de documentos.
// Con AllVendors=false y VendorIDs vacío el resultado es vacío.
type DocumentFilter struct {
	AllVendors bool
	VendorIDs  []string
	Limit      int // 0 = sin límite
}

// MatchesNone true si el filtro no puede devolver documentos.
func (f DocumentFilter) MatchesNone() bool {
	return !f.AllVendors && len(f.VendorIDs) == 0
}

// DocumentStats conteos por estado dentro de un filtro.
type DocumentStats struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}

// StatusChange datos de una transición de revisión.
type StatusChange struct {
	From       entity.DocumentStatus
	To         entity.DocumentStatus
	ReviewerID string
	At         time.Time
}

// DocumentRepository define el puerto de persistencia para Document.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	FindByID(ctx context.Context, id string) (*entity.Document, error)
	// List ordena por fecha de subida descendente (desempate por id).
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Document, error)
	Stats(ctx context.Context, filter DocumentFilter) (DocumentStats, error)
	// UpdateStatus aplica el cambio solo si el estado actual sigue siendo change.From
	// (compare-and-swap). domain.ErrNotFound si no existe; domain.ErrConflict si el estado cambió.
	UpdateStatus(ctx context.Context, id string, change StatusChange) (*entity.Document, error)
}

// HealthChecker lo implementa cualquier store que pueda reportar conectividad.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
