// Package documents casos de uso del ciclo de vida de documentos: subida, listado
// filtrado por rol y revisión (pending → approved | rejected).
package documents

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/vendordocs-api/internal/application/dto"
	"github.com/jhoicas/vendordocs-api/internal/application/presenter"
	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/access"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
	"github.com/jhoicas/vendordocs-api/internal/domain/review"
	"github.com/jhoicas/vendordocs-api/pkg/logger"
)

// UploadInput archivo recibido en la petición multipart.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader // nil = no se envió archivo
	Category    string
}

// UseCase orquesta store de metadatos, almacenamiento de archivos y reglas de acceso.
type UseCase struct {
	docs    repository.DocumentRepository
	users   repository.UserRepository
	storage FileStorage
	metrics Metrics
	log     *logger.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(docs repository.DocumentRepository, users repository.UserRepository, storage FileStorage, metrics Metrics, log *logger.Logger) *UseCase {
	return &UseCase{
		docs:    docs,
		users:   users,
		storage: storage,
		metrics: metrics,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Upload guarda el archivo y registra el documento en pending a nombre del llamador.
// Si el registro falla se borra el archivo recién escrito.
func (uc *UseCase) Upload(ctx context.Context, caller access.Subject, in UploadInput) (*dto.DocumentResponse, error) {
	if err := access.CanAccess(caller, access.ActionUploadDocument, caller.UserID); err != nil {
		return nil, err
	}
	filename := path.Base(strings.ReplaceAll(strings.TrimSpace(in.Filename), "\\", "/"))
	if in.Content == nil || filename == "" || filename == "." || filename == "/" {
		return nil, fmt.Errorf("%w: no se recibió ningún archivo", domain.ErrInvalidInput)
	}
	category := entity.NormalizeCategory(in.Category)

	key, err := uc.storage.Save(ctx, caller.UserID, filename, in.Content)
	if err != nil {
		return nil, fmt.Errorf("guardar archivo: %w", err)
	}
	doc := &entity.Document{
		ID:              uuid.New().String(),
		VendorID:        caller.UserID,
		Filename:        filename,
		StorageLocation: key,
		ContentType:     in.ContentType,
		Size:            in.Size,
		Category:        category,
		Status:          entity.DocumentStatusPending,
		UploadDate:      uc.now(),
	}
	if err := uc.docs.Create(ctx, doc); err != nil {
		if delErr := uc.storage.Delete(ctx, key); delErr != nil {
			uc.log.Error().Err(delErr).Str("key", key).Msg("archivo huérfano: no se pudo eliminar tras fallar el registro")
		}
		return nil, fmt.Errorf("registrar documento: %w", err)
	}
	if uc.metrics != nil {
		uc.metrics.DocumentUploaded(string(category), in.Size)
	}
	uc.log.Info().Str("document_id", doc.ID).Str("vendor_id", doc.VendorID).Str("category", string(category)).Msg("documento subido")
	out := presenter.Document(doc, "")
	return &out, nil
}

// List documentos visibles para el llamador, más recientes primero, con vendorName.
func (uc *UseCase) List(ctx context.Context, caller access.Subject) ([]dto.DocumentResponse, error) {
	docs, err := uc.visible(ctx, caller, access.ActionListDocuments, 0)
	if err != nil {
		return nil, err
	}
	return presenter.Documents(ctx, uc.users, docs)
}

// Visible entidades visibles para el llamador (usado por la exportación).
func (uc *UseCase) Visible(ctx context.Context, caller access.Subject, action access.Action) ([]*entity.Document, error) {
	return uc.visible(ctx, caller, action, 0)
}

// SetStatus registra la decisión del revisor.
//   - ErrForbidden: proveedor, o auditor sin el proveedor asignado
//   - ErrInvalidInput: status distinto de approved / rejected
//   - ErrNotFound: el documento no existe
//   - ErrConflict: el documento ya fue revisado
func (uc *UseCase) SetStatus(ctx context.Context, caller access.Subject, documentID, status string) (*dto.DocumentResponse, error) {
	if !access.RoleAllowed(caller.Role, access.ActionUpdateDocumentStatus) {
		return nil, fmt.Errorf("%w: rol %s no revisa documentos", domain.ErrForbidden, caller.Role)
	}
	next, err := review.ParseDecision(status)
	if err != nil {
		return nil, err
	}
	doc, err := uc.docs.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.CanAccess(caller, access.ActionUpdateDocumentStatus, doc.VendorID); err != nil {
		return nil, err
	}
	if err := review.CheckTransition(doc.Status, next); err != nil {
		return nil, err
	}
	updated, err := uc.docs.UpdateStatus(ctx, doc.ID, repository.StatusChange{
		From:       doc.Status,
		To:         next,
		ReviewerID: caller.UserID,
		At:         uc.now(),
	})
	if err != nil {
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.DocumentReviewed(string(next), caller.Role.String())
	}
	uc.log.Info().Str("document_id", doc.ID).Str("status", string(next)).Str("reviewer_id", caller.UserID).Msg("documento revisado")

	out, err := presenter.Documents(ctx, uc.users, []*entity.Document{updated})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (uc *UseCase) visible(ctx context.Context, caller access.Subject, action access.Action, limit int) ([]*entity.Document, error) {
	if err := access.CanAccess(caller, action, ""); err != nil {
		return nil, err
	}
	filter, err := FilterFor(caller, limit)
	if err != nil {
		return nil, err
	}
	return uc.docs.List(ctx, filter)
}

// FilterFor traduce la visibilidad del llamador en un filtro del repositorio.
func FilterFor(caller access.Subject, limit int) (repository.DocumentFilter, error) {
	scope, err := access.DocumentScope(caller)
	if err != nil {
		return repository.DocumentFilter{}, err
	}
	return repository.DocumentFilter{
		AllVendors: scope.AllVendors,
		VendorIDs:  scope.VendorIDs,
		Limit:      limit,
	}, nil
}
