package repository

import (
	"context"

	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Find* devuelven (nil, nil) cuando no hay registro.
type UserRepository interface {
	// Create persiste un usuario nuevo. Devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
	// ListByIDs devuelve los usuarios existentes entre ids (los inexistentes se omiten).
	ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	CountByRole(ctx context.Context, role entity.Role) (int, error)

	// ── Asignaciones auditor → proveedor ──────────────────────────────────────

	// AddAssignment agrega vendorID al conjunto del auditor de forma atómica
	// (sin efecto si ya estaba). domain.ErrNotFound si no existe un auditor con ese id.
	AddAssignment(ctx context.Context, auditorID, vendorID string) error
	AssignedVendorIDs(ctx context.Context, auditorID string) ([]string, error)
}
