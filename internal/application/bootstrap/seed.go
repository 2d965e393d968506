// Package bootstrap crea las cuentas iniciales: el administrador y, opcionalmente,
// las cuentas de demostración (auditor asignado a un proveedor).
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/vendordocs-api/internal/application/dto"
	"github.com/jhoicas/vendordocs-api/internal/application/usecase"
	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
	"github.com/jhoicas/vendordocs-api/pkg/logger"
)

// Options cuentas a crear.
type Options struct {
	AdminEmail    string
	AdminPassword string
	Demo          bool
}

// Cuentas de demostración.
var (
	DemoAuditor = dto.CreateAuditorRequest{Name: "John Auditor", Email: "auditor@test.com", Password: "auditor123"}
	DemoVendor  = dto.CreateVendorRequest{Name: "ABC Corp", Email: "vendor@test.com", Password: "vendor123", CompanyName: "ABC Corporation"}
)

// Seed es idempotente: las cuentas que ya existen (por email) se dejan como están.
func Seed(ctx context.Context, users repository.UserRepository, userUC *usecase.UserUseCase, assignUC *usecase.AssignmentUseCase, opts Options, log *logger.Logger) error {
	if opts.AdminEmail != "" {
		if _, err := ensure(ctx, users, opts.AdminEmail, func() (*dto.UserResponse, error) {
			return userUC.CreateAdmin(ctx, "Admin User", opts.AdminEmail, opts.AdminPassword)
		}); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		log.Info().Str("email", opts.AdminEmail).Msg("seed: administrador listo")
	}
	if !opts.Demo {
		return nil
	}

	auditorID, err := ensure(ctx, users, DemoAuditor.Email, func() (*dto.UserResponse, error) {
		return userUC.CreateAuditor(ctx, DemoAuditor)
	})
	if err != nil {
		return fmt.Errorf("seed auditor: %w", err)
	}
	vendorID, err := ensure(ctx, users, DemoVendor.Email, func() (*dto.UserResponse, error) {
		return userUC.CreateVendor(ctx, DemoVendor)
	})
	if err != nil {
		return fmt.Errorf("seed proveedor: %w", err)
	}
	if err := assignUC.Assign(ctx, dto.AssignVendorRequest{AuditorID: auditorID, VendorID: vendorID}); err != nil {
		return fmt.Errorf("seed asignación: %w", err)
	}
	log.Info().Str("auditor", DemoAuditor.Email).Str("vendor", DemoVendor.Email).Msg("seed: cuentas demo listas")
	return nil
}

// ensure devuelve el id de la cuenta con ese email, creándola si falta.
func ensure(ctx context.Context, users repository.UserRepository, email string, create func() (*dto.UserResponse, error)) (string, error) {
	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	out, err := create()
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		// otra instancia la creó entre la consulta y el insert
		if existing, err = users.FindByEmail(ctx, email); err == nil && existing != nil {
			return existing.ID, nil
		}
	}
	if err != nil {
		return "", err
	}
	return out.ID, nil
}
