// Package presenter convierte entidades en DTOs de respuesta.
package presenter

import (
	"context"
	"fmt"

	"github.com/jhoicas/vendordocs-api/internal/application/dto"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
)

// UploadsPrefix ruta pública bajo la que se sirven los archivos subidos.
const UploadsPrefix = "uploads/"

// UnknownVendor nombre mostrado cuando el proveedor del documento no existe.
const UnknownVendor = "Unknown"

// User entidad → DTO sin hash de password.
func User(u *entity.User) dto.UserResponse {
	out := dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role.String(),
		CompanyName: u.CompanyName,
		CreatedAt:   u.CreatedAt,
	}
	if u.Role == entity.RoleAuditor {
		ids := make([]string, len(u.AssignedVendorIDs))
		copy(ids, u.AssignedVendorIDs)
		out.AssignedVendors = &ids
	}
	return out
}

// Users lista de entidades → DTOs.
func Users(list []*entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, User(u))
	}
	return out
}

// Document entidad → DTO. vendorName vacío se omite en el JSON.
func Document(d *entity.Document, vendorName string) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:          d.ID,
		VendorID:    d.VendorID,
		VendorName:  vendorName,
		Filename:    d.Filename,
		Filepath:    UploadsPrefix + d.StorageLocation,
		ContentType: d.ContentType,
		Size:        d.Size,
		Category:    string(d.Category),
		Status:      string(d.Status),
		UploadDate:  d.UploadDate,
		ReviewedBy:  d.ReviewedBy,
		ReviewedAt:  d.ReviewedAt,
	}
}

// Documents anota cada documento con el nombre de su proveedor en una sola consulta.
func Documents(ctx context.Context, users repository.UserRepository, docs []*entity.Document) ([]dto.DocumentResponse, error) {
	out := make([]dto.DocumentResponse, 0, len(docs))
	if len(docs) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(docs))
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		if !seen[d.VendorID] {
			seen[d.VendorID] = true
			ids = append(ids, d.VendorID)
		}
	}
	vendors, err := users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("nombres de proveedores: %w", err)
	}
	names := make(map[string]string, len(vendors))
	for _, v := range vendors {
		names[v.ID] = v.Name
	}
	for _, d := range docs {
		name, ok := names[d.VendorID]
		if !ok {
			name = UnknownVendor
		}
		out = append(out, Document(d, name))
	}
	return out, nil
}
