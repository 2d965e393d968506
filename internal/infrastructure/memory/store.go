// Package memory implementa los puertos de persistencia en memoria del proceso.
// Sirve para desarrollo local (STORE_DRIVER=memory) y como fake en los tests;
// los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.DocumentRepository = (*DocumentRepo)(nil)
	_ repository.HealthChecker      = (*DB)(nil)
)

// DB estado compartido de los repositorios en memoria.
type DB struct {
	mu      sync.RWMutex
	users   map[string]*entity.User
	byEmail map[string]string
	docs    map[string]*entity.Document
}

// NewDB crea una base vacía.
func NewDB() *DB {
	return &DB{
		users:   make(map[string]*entity.User),
		byEmail: make(map[string]string),
		docs:    make(map[string]*entity.Document),
	}
}

// Ping siempre responde: no hay conexión que pueda caerse.
func (db *DB) Ping(context.Context) error { return nil }

// Users devuelve el repositorio de usuarios sobre esta base.
func (db *DB) Users() *UserRepo { return &UserRepo{db: db} }

// Documents devuelve el repositorio de documentos sobre esta base.
func (db *DB) Documents() *DocumentRepo { return &DocumentRepo{db: db} }

// ── Usuarios ────────────────────────────────────────────────────────────────

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct {
	db *DB
}

// Create persiste un nuevo usuario; el email es único tal como se escribió.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, exists := r.db.byEmail[user.Email]; exists {
		return domain.ErrEmailAlreadyExists
	}
	stored := cloneUser(user)
	if stored.Role == entity.RoleAuditor && stored.AssignedVendorIDs == nil {
		stored.AssignedVendorIDs = []string{}
	}
	r.db.users[user.ID] = stored
	r.db.byEmail[user.Email] = user.ID
	return nil
}

// FindByID obtiene un usuario por ID.
func (r *UserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// FindByEmail obtiene un usuario por email.
func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	id, ok := r.db.byEmail[email]
	if !ok {
		return nil, nil
	}
	return cloneUser(r.db.users[id]), nil
}

// ListByRole lista usuarios de un rol por fecha de creación.
func (r *UserRepo) ListByRole(_ context.Context, role entity.Role) ([]*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	list := make([]*entity.User, 0)
	for _, u := range r.db.users {
		if u.Role == role {
			list = append(list, cloneUser(u))
		}
	}
	sortUsers(list)
	return list, nil
}

// ListByIDs devuelve los usuarios existentes entre ids.
func (r *UserRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	seen := make(map[string]bool, len(ids))
	list := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if u, ok := r.db.users[id]; ok {
			list = append(list, cloneUser(u))
		}
	}
	sortUsers(list)
	return list, nil
}

// CountByRole cuenta usuarios de un rol.
func (r *UserRepo) CountByRole(_ context.Context, role entity.Role) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	n := 0
	for _, u := range r.db.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// AddAssignment agrega el proveedor bajo el lock de escritura: lectura y escritura
// del conjunto ocurren en la misma sección crítica.
func (r *UserRepo) AddAssignment(_ context.Context, auditorID, vendorID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[auditorID]
	if !ok || u.Role != entity.RoleAuditor {
		return domain.ErrNotFound
	}
	if !u.IsAssignedTo(vendorID) {
		u.AssignedVendorIDs = append(u.AssignedVendorIDs, vendorID)
	}
	return nil
}

// AssignedVendorIDs proveedores asignados al auditor (vacío si no es auditor).
func (r *UserRepo) AssignedVendorIDs(_ context.Context, auditorID string) ([]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[auditorID]
	if !ok {
		return []string{}, nil
	}
	ids := make([]string, len(u.AssignedVendorIDs))
	copy(ids, u.AssignedVendorIDs)
	return ids, nil
}

// ── Documentos ──────────────────────────────────────────────────────────────

// DocumentRepo implementación en memoria de repository.DocumentRepository.
type DocumentRepo struct {
	db *DB
}

// Create persiste un documento.
func (r *DocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, exists := r.db.docs[doc.ID]; exists {
		return domain.ErrConflict
	}
	r.db.docs[doc.ID] = cloneDocument(doc)
	return nil
}

// FindByID obtiene un documento por ID.
func (r *DocumentRepo) FindByID(_ context.Context, id string) (*entity.Document, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	d, ok := r.db.docs[id]
	if !ok {
		return nil, nil
	}
	return cloneDocument(d), nil
}

// List documentos dentro del filtro, más recientes primero.
func (r *DocumentRepo) List(_ context.Context, filter repository.DocumentFilter) ([]*entity.Document, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	list := make([]*entity.Document, 0)
	if filter.MatchesNone() {
		return list, nil
	}
	for _, d := range r.db.docs {
		if matches(filter, d) {
			list = append(list, cloneDocument(d))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].UploadDate.Equal(list[j].UploadDate) {
			return list[i].UploadDate.After(list[j].UploadDate)
		}
		return list[i].ID > list[j].ID
	})
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
	}
	return list, nil
}

// Stats conteos por estado.
func (r *DocumentRepo) Stats(_ context.Context, filter repository.DocumentFilter) (repository.DocumentStats, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var st repository.DocumentStats
	if filter.MatchesNone() {
		return st, nil
	}
	for _, d := range r.db.docs {
		if !matches(filter, d) {
			continue
		}
		st.Total++
		switch d.Status {
		case entity.DocumentStatusPending:
			st.Pending++
		case entity.DocumentStatusApproved:
			st.Approved++
		case entity.DocumentStatusRejected:
			st.Rejected++
		}
	}
	return st, nil
}

// UpdateStatus compare-and-swap del estado bajo el lock de escritura.
func (r *DocumentRepo) UpdateStatus(_ context.Context, id string, change repository.StatusChange) (*entity.Document, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if d.Status != change.From {
		return nil, domain.ErrConflict
	}
	at := change.At
	d.Status = change.To
	d.ReviewedBy = change.ReviewerID
	d.ReviewedAt = &at
	return cloneDocument(d), nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

func matches(f repository.DocumentFilter, d *entity.Document) bool {
	if f.AllVendors {
		return true
	}
	for _, id := range f.VendorIDs {
		if id == d.VendorID {
			return true
		}
	}
	return false
}

func sortUsers(list []*entity.User) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.AssignedVendorIDs != nil {
		c.AssignedVendorIDs = make([]string, len(u.AssignedVendorIDs))
		copy(c.AssignedVendorIDs, u.AssignedVendorIDs)
	}
	return &c
}

func cloneDocument(d *entity.Document) *entity.Document {
	c := *d
	if d.ReviewedAt != nil {
		at := *d.ReviewedAt
		c.ReviewedAt = &at
	}
	return &c
}
