package entity

import (
	"fmt"
	"time"
)

// Role rol de un usuario. Conjunto cerrado: admin, auditor, vendor.
type Role string

// Roles válidos para User.
const (
	RoleAdmin   Role = "admin"
	RoleAuditor Role = "auditor"
	RoleVendor  Role = "vendor"
)

// ParseRole convierte texto (p. ej. el claim del token) en un Role conocido.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleAuditor, RoleVendor:
		return r, nil
	default:
		return "", fmt.Errorf("rol desconocido %q", s)
	}
}

func (r Role) String() string { return string(r) }

// User representa una cuenta del sistema. El rol se fija al crearla y no cambia.
type User struct {
	ID                string
	Email             string
	PasswordHash      string // bcrypt hash, nunca sale del dominio
	Name              string
	Role              Role
	CompanyName       string   // solo vendor
	AssignedVendorIDs []string // solo auditor; conjunto sin orden
	CreatedAt         time.Time
}

// IsAssignedTo informa si el auditor tiene al proveedor en su lista.
func (u *User) IsAssignedTo(vendorID string) bool {
	for _, id := range u.AssignedVendorIDs {
		if id == vendorID {
			return true
		}
	}
	return false
}
