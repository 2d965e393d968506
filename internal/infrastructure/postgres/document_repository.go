package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `
	id, vendor_id, filename, storage_location, content_type, size_bytes,
	category, status, upload_date, reviewed_by, reviewed_at`

// DocumentRepo implementación de DocumentRepository sobre PostgreSQL (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste los metadatos de un documento subido.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (id, vendor_id, filename, storage_location, content_type, size_bytes,
		                       category, status, upload_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.VendorID, doc.Filename, doc.StorageLocation, doc.ContentType, doc.Size,
		string(doc.Category), string(doc.Status), doc.UploadDate,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// FindByID obtiene un documento por ID.
func (r *DocumentRepo) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document by id: %w", err)
	}
	return d, nil
}

// List documentos del filtro, más recientes primero. LIMIT NULL equivale a sin límite.
func (r *DocumentRepo) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.Document, error) {
	list := make([]*entity.Document, 0)
	if filter.MatchesNone() {
		return list, nil
	}
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE ($1 OR vendor_id = ANY($2))
		ORDER BY upload_date DESC, id DESC
		LIMIT NULLIF($3, 0)`
	rows, err := r.q.Query(ctx, query, filter.AllVendors, vendorIDsArg(filter), filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Stats conteos por estado en una sola consulta.
func (r *DocumentRepo) Stats(ctx context.Context, filter repository.DocumentFilter) (repository.DocumentStats, error) {
	var st repository.DocumentStats
	if filter.MatchesNone() {
		return st, nil
	}
	query := `
		SELECT
		    COUNT(*),
		    COUNT(*) FILTER (WHERE status = 'pending'),
		    COUNT(*) FILTER (WHERE status = 'approved'),
		    COUNT(*) FILTER (WHERE status = 'rejected')
		FROM documents
		WHERE ($1 OR vendor_id = ANY($2))`
	err := r.q.QueryRow(ctx, query, filter.AllVendors, vendorIDsArg(filter)).
		Scan(&st.Total, &st.Pending, &st.Approved, &st.Rejected)
	if err != nil {
		return st, fmt.Errorf("document stats: %w", err)
	}
	return st, nil
}

// UpdateStatus cambia el estado solo si sigue en change.From.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id string, change repository.StatusChange) (*entity.Document, error) {
	query := `
		UPDATE documents SET status = $3, reviewed_by = $4, reviewed_at = $5
		WHERE id = $1 AND status = $2
		RETURNING ` + documentColumns
	d, err := scanDocument(r.q.QueryRow(ctx, query,
		id, string(change.From), string(change.To), nullIfEmpty(change.ReviewerID), change.At,
	))
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update document status: %w", err)
	}
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrConflict
}

func vendorIDsArg(f repository.DocumentFilter) []string {
	if f.VendorIDs == nil {
		return []string{}
	}
	return f.VendorIDs
}

func scanDocument(row pgxScanner) (*entity.Document, error) {
	var (
		d          entity.Document
		category   string
		status     string
		reviewedBy *string
	)
	err := row.Scan(
		&d.ID, &d.VendorID, &d.Filename, &d.StorageLocation, &d.ContentType, &d.Size,
		&category, &status, &d.UploadDate, &reviewedBy, &d.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Category = entity.DocumentCategory(category)
	d.Status = entity.DocumentStatus(status)
	d.ReviewedBy = derefString(reviewedBy)
	return &d, nil
}
