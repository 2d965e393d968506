// Package review reglas de transición del estado de revisión de un documento.
//
//	pending ──► approved
//	   └──────► rejected
//
// approved y rejected son terminales: no hay re-revisión ni regreso a pending.
package review

import (
	"fmt"

	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
)

// ParseDecision valida el estado pedido por el revisor. Solo approved o rejected;
// pending se alcanza únicamente al crear el documento.
func ParseDecision(s string) (entity.DocumentStatus, error) {
	switch st := entity.DocumentStatus(s); st {
	case entity.DocumentStatusApproved, entity.DocumentStatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("%w: estado %q no permitido, use approved o rejected", domain.ErrInvalidInput, s)
	}
}

// IsTerminal true para approved y rejected.
func IsTerminal(s entity.DocumentStatus) bool {
	return s == entity.DocumentStatusApproved || s == entity.DocumentStatusRejected
}

// CheckTransition devuelve domain.ErrConflict si el documento ya no admite revisión.
func CheckTransition(current, next entity.DocumentStatus) error {
	if current != entity.DocumentStatusPending {
		return fmt.Errorf("%w: el documento ya está %s", domain.ErrConflict, current)
	}
	if !IsTerminal(next) {
		return fmt.Errorf("%w: transición %s → %s", domain.ErrInvalidInput, current, next)
	}
	return nil
}
