package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DocumentStatus estado de revisión de un documento.
type DocumentStatus string

// Estados del ciclo de vida: pending → approved | rejected.
const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// DocumentCategory clasificación que elige el proveedor al subir.
type DocumentCategory string

const (
	CategoryInvoice     DocumentCategory = "invoice"
	CategoryReport      DocumentCategory = "report"
	CategoryCertificate DocumentCategory = "certificate"
	CategoryAgreement   DocumentCategory = "agreement"
	CategoryOther       DocumentCategory = "other"
)

// NormalizeCategory acepta la categoría sin distinguir mayúsculas; cualquier valor
// desconocido o vacío se guarda como "other".
func NormalizeCategory(s string) DocumentCategory {
	switch c := DocumentCategory(cases.Lower(language.Und).String(strings.TrimSpace(s))); c {
	case CategoryInvoice, CategoryReport, CategoryCertificate, CategoryAgreement:
		return c
	default:
		return CategoryOther
	}
}

// Document un archivo subido por un proveedor y su estado de revisión.
// StorageLocation es la clave relativa dentro del directorio de uploads.
type Document struct {
	ID              string
	VendorID        string
	Filename        string
	StorageLocation string
	ContentType     string
	Size            int64
	Category        DocumentCategory
	Status          DocumentStatus
	UploadDate      time.Time
	ReviewedBy      string // vacío mientras está pending
	ReviewedAt      *time.Time
}
