package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/vendordocs-api/internal/application/dto"
	"github.com/jhoicas/vendordocs-api/internal/application/presenter"
	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
)

// AssignmentUseCase mantiene el grafo auditor → proveedores.
type AssignmentUseCase struct {
	repo repository.UserRepository
}

// NewAssignmentUseCase construye el caso de uso.
func NewAssignmentUseCase(repo repository.UserRepository) *AssignmentUseCase {
	return &AssignmentUseCase{repo: repo}
}

// Assign agrega vendorID a los asignados del auditor. Idempotente.
//   - ErrNotFound: no hay auditor con ese id
//   - ErrInvalidInput: vendorID no es un proveedor existente
func (uc *AssignmentUseCase) Assign(ctx context.Context, in dto.AssignVendorRequest) error {
	if in.AuditorID == "" || in.VendorID == "" {
		return fmt.Errorf("%w: auditorId y vendorId son requeridos", domain.ErrInvalidInput)
	}
	vendor, err := uc.repo.FindByID(ctx, in.VendorID)
	if err != nil {
		return err
	}
	if vendor == nil || vendor.Role != entity.RoleVendor {
		return fmt.Errorf("%w: %q no es un proveedor", domain.ErrInvalidInput, in.VendorID)
	}
	return uc.repo.AddAssignment(ctx, in.AuditorID, in.VendorID)
}

// AssignedVendors registros de los proveedores asignados al auditor.
func (uc *AssignmentUseCase) AssignedVendors(ctx context.Context, auditorID string) ([]dto.UserResponse, error) {
	ids, err := uc.repo.AssignedVendorIDs(ctx, auditorID)
	if err != nil {
		return nil, err
	}
	vendors, err := uc.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return presenter.Users(vendors), nil
}
