// Package principal arma el access.Subject del llamador a partir del store,
// para que las decisiones usen las asignaciones vigentes y no las del token.
package principal

import (
	"context"
	"fmt"

	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/access"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
)

// Loader carga el Subject en cada petición (sin caché).
type Loader struct {
	users repository.UserRepository
}

// NewLoader construye el loader.
func NewLoader(users repository.UserRepository) *Loader {
	return &Loader{users: users}
}

// Load devuelve el Subject de userID. ErrUnauthorized si la cuenta ya no existe.
func (l *Loader) Load(ctx context.Context, userID string) (access.Subject, error) {
	user, err := l.users.FindByID(ctx, userID)
	if err != nil {
		return access.Subject{}, fmt.Errorf("cargar usuario: %w", err)
	}
	if user == nil {
		return access.Subject{}, fmt.Errorf("%w: la cuenta del token no existe", domain.ErrUnauthorized)
	}
	s := access.Subject{UserID: user.ID, Role: user.Role}
	if len(user.AssignedVendorIDs) > 0 {
		s.AssignedVendorIDs = append([]string(nil), user.AssignedVendorIDs...)
	}
	return s, nil
}
