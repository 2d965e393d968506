package dto

import "time"

// DocumentResponse documento tal como lo ve el cliente. VendorName se resuelve al listar
// ("Unknown" si el proveedor ya no existe).
type DocumentResponse struct {
	ID          string     `json:"id"`
	VendorID    string     `json:"vendorId"`
	VendorName  string     `json:"vendorName,omitempty"`
	Filename    string     `json:"filename"`
	Filepath    string     `json:"filepath"`
	ContentType string     `json:"contentType,omitempty"`
	Size        int64      `json:"size"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	UploadDate  time.Time  `json:"uploadDate"`
	ReviewedBy  string     `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
}

// UpdateStatusRequest entrada de PUT /api/documents/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
