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

var _ repository.UserRepository = (*UserRepo)(nil)

// userColumns incluye las asignaciones del auditor agregadas en un text[].
const userColumns = `
	u.id, u.email, u.password_hash, u.name, u.role, u.company_name, u.created_at,
	COALESCE((
		SELECT array_agg(a.vendor_id ORDER BY a.assigned_at, a.vendor_id)
		FROM auditor_vendor_assignments a WHERE a.auditor_id = u.id
	), '{}'::text[])`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, company_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, string(user.Role),
		nullIfEmpty(user.CompanyName), user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByID obtiene un usuario por ID.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// FindByEmail obtiene un usuario por email (comparación exacta).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// ListByRole lista los usuarios de un rol por fecha de creación.
func (r *UserRepo) ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.role = $1 ORDER BY u.created_at, u.id`
	return r.list(ctx, "list users by role", query, string(role))
}

// ListByIDs devuelve los usuarios existentes entre ids.
func (r *UserRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = ANY($1) ORDER BY u.created_at, u.id`
	return r.list(ctx, "list users by ids", query, ids)
}

// CountByRole cuenta usuarios de un rol.
func (r *UserRepo) CountByRole(ctx context.Context, role entity.Role) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, string(role)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// AddAssignment inserta el par en una sola sentencia; ON CONFLICT lo hace idempotente
// y evita la pérdida de actualizaciones entre peticiones concurrentes.
func (r *UserRepo) AddAssignment(ctx context.Context, auditorID, vendorID string) error {
	query := `
		INSERT INTO auditor_vendor_assignments (auditor_id, vendor_id)
		SELECT u.id, $2 FROM users u WHERE u.id = $1 AND u.role = 'auditor'
		ON CONFLICT (auditor_id, vendor_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, query, auditorID, vendorID)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	// 0 filas: ya estaba asignado o el auditor no existe.
	var exists bool
	err = r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND role = 'auditor')`, auditorID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check auditor: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

// AssignedVendorIDs proveedores asignados al auditor.
func (r *UserRepo) AssignedVendorIDs(ctx context.Context, auditorID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT vendor_id FROM auditor_vendor_assignments
		WHERE auditor_id = $1 ORDER BY assigned_at, vendor_id`, auditorID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgxScanner) (*entity.User, error) {
	var (
		u           entity.User
		role        string
		companyName *string
		assigned    []string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &companyName, &u.CreatedAt, &assigned); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	u.CompanyName = derefString(companyName)
	if u.Role == entity.RoleAuditor {
		u.AssignedVendorIDs = assigned
	}
	return &u, nil
}
