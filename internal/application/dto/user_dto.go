package dto

import "time"

// CreateAuditorRequest entrada para crear un auditor (password en texto, se hashea en use case).
type CreateAuditorRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateVendorRequest entrada para crear un proveedor.
type CreateVendorRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
}

// UserResponse salida de un usuario (sin password).
// AssignedVendors solo aparece en auditores y nunca es null para ellos.
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	CompanyName     string    `json:"companyName,omitempty"`
	AssignedVendors *[]string `json:"assignedVendors,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UsersListResponse salida de GET /api/admin/users.
type UsersListResponse struct {
	Vendors  []UserResponse `json:"vendors"`
	Auditors []UserResponse `json:"auditors"`
}

// AssignVendorRequest entrada de POST /api/admin/assignments.
type AssignVendorRequest struct {
	AuditorID string `json:"auditorId"`
	VendorID  string `json:"vendorId"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
