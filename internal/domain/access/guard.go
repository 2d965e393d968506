// Package access decide quién puede hacer qué. Funciones puras: toda la información
// (rol y proveedores asignados) llega en el Subject, cargado en cada petición.
package access

import (
	"fmt"

	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
)

// Action operación protegida de la API.
type Action int

const (
	ActionCreateAuditor Action = iota + 1
	ActionCreateVendor
	ActionListUsers
	ActionViewAdminDashboard
	ActionAssignVendor
	ActionViewAuditorDashboard
	ActionListAssignedVendors
	ActionViewVendorDashboard
	ActionUploadDocument
	ActionListDocuments
	ActionExportDocuments
	ActionUpdateDocumentStatus
)

var actionNames = map[Action]string{
	ActionCreateAuditor:        "create_auditor",
	ActionCreateVendor:         "create_vendor",
	ActionListUsers:            "list_users",
	ActionViewAdminDashboard:   "admin_dashboard",
	ActionAssignVendor:         "assign_vendor",
	ActionViewAuditorDashboard: "auditor_dashboard",
	ActionListAssignedVendors:  "list_assigned_vendors",
	ActionViewVendorDashboard:  "vendor_dashboard",
	ActionUploadDocument:       "upload_document",
	ActionListDocuments:        "list_documents",
	ActionExportDocuments:      "export_documents",
	ActionUpdateDocumentStatus: "update_document_status",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Subject identidad del llamador tal como se conoce en este instante.
// AssignedVendorIDs solo aplica a auditores y se lee del store en cada petición.
type Subject struct {
	UserID            string
	Role              entity.Role
	AssignedVendorIDs []string
}

func (s Subject) assigned(vendorID string) bool {
	for _, id := range s.AssignedVendorIDs {
		if id == vendorID {
			return true
		}
	}
	return false
}

// RoleAllowed filtro grueso por rol, sin mirar el recurso. Lo usan las rutas HTTP.
func RoleAllowed(role entity.Role, action Action) bool {
	switch role {
	case entity.RoleAdmin:
		switch action {
		case ActionCreateAuditor, ActionCreateVendor, ActionListUsers, ActionViewAdminDashboard,
			ActionAssignVendor, ActionListDocuments, ActionExportDocuments, ActionUpdateDocumentStatus:
			return true
		}
	case entity.RoleAuditor:
		switch action {
		case ActionViewAuditorDashboard, ActionListAssignedVendors, ActionListDocuments,
			ActionExportDocuments, ActionUpdateDocumentStatus:
			return true
		}
	case entity.RoleVendor:
		switch action {
		case ActionViewVendorDashboard, ActionUploadDocument, ActionListDocuments, ActionExportDocuments:
			return true
		}
	}
	return false
}

// CanAccess verificación completa. resourceOwnerID es el proveedor dueño del recurso
// (vacío para acciones que no apuntan a un documento concreto).
//
// Devuelve domain.ErrUnauthenticated sin usuario y domain.ErrForbidden si no está permitido.
func CanAccess(s Subject, action Action, resourceOwnerID string) error {
	if s.UserID == "" {
		return domain.ErrUnauthenticated
	}
	if !RoleAllowed(s.Role, action) {
		return forbidden(s, action)
	}
	switch action {
	case ActionUpdateDocumentStatus:
		switch s.Role {
		case entity.RoleAdmin:
			return nil
		case entity.RoleAuditor:
			if resourceOwnerID != "" && s.assigned(resourceOwnerID) {
				return nil
			}
		}
		return forbidden(s, action)
	case ActionUploadDocument:
		// el proveedor solo sube a su propio nombre
		if resourceOwnerID != "" && resourceOwnerID != s.UserID {
			return forbidden(s, action)
		}
	}
	return nil
}

func forbidden(s Subject, action Action) error {
	return fmt.Errorf("%w: rol %s no puede %s", domain.ErrForbidden, s.Role, action)
}
