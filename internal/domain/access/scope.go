package access

import (
	"fmt"

	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
)

// Scope conjunto de proveedores cuyos documentos puede ver un Subject.
type Scope struct {
	AllVendors bool
	VendorIDs  []string
}

// Empty true si el alcance no incluye ningún documento (auditor sin asignaciones).
func (sc Scope) Empty() bool {
	return !sc.AllVendors && len(sc.VendorIDs) == 0
}

// Includes informa si los documentos del proveedor están dentro del alcance.
func (sc Scope) Includes(vendorID string) bool {
	if sc.AllVendors {
		return true
	}
	for _, id := range sc.VendorIDs {
		if id == vendorID {
			return true
		}
	}
	return false
}

// DocumentScope visibilidad de documentos por rol:
//   - admin: todos
//   - auditor: los de sus proveedores asignados (ninguno si no tiene)
//   - vendor: solo los propios
func DocumentScope(s Subject) (Scope, error) {
	switch s.Role {
	case entity.RoleAdmin:
		return Scope{AllVendors: true}, nil
	case entity.RoleAuditor:
		ids := make([]string, len(s.AssignedVendorIDs))
		copy(ids, s.AssignedVendorIDs)
		return Scope{VendorIDs: ids}, nil
	case entity.RoleVendor:
		return Scope{VendorIDs: []string{s.UserID}}, nil
	default:
		return Scope{}, fmt.Errorf("%w: rol %q sin alcance de documentos", domain.ErrForbidden, s.Role)
	}
}
