package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/vendordocs-api/internal/application/dto"
	"github.com/jhoicas/vendordocs-api/internal/application/presenter"
	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// Límites de password para cuentas nuevas. El máximo es el de bcrypt.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// UserUseCase alta y listado de cuentas (operaciones de administrador).
type UserUseCase struct {
	repo       repository.UserRepository
	bcryptCost int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost cambia el costo de bcrypt (los tests usan bcrypt.MinCost).
func (uc *UserUseCase) WithBcryptCost(cost int) *UserUseCase {
	uc.bcryptCost = cost
	return uc
}

// CreateAuditor crea un auditor sin proveedores asignados.
func (uc *UserUseCase) CreateAuditor(ctx context.Context, in dto.CreateAuditorRequest) (*dto.UserResponse, error) {
	return uc.create(ctx, entity.RoleAuditor, in.Name, in.Email, in.Password, "")
}

// CreateVendor crea un proveedor.
func (uc *UserUseCase) CreateVendor(ctx context.Context, in dto.CreateVendorRequest) (*dto.UserResponse, error) {
	return uc.create(ctx, entity.RoleVendor, in.Name, in.Email, in.Password, strings.TrimSpace(in.CompanyName))
}

// CreateAdmin crea un administrador. Solo lo usa el seed: la API no expone esta operación.
func (uc *UserUseCase) CreateAdmin(ctx context.Context, name, email, password string) (*dto.UserResponse, error) {
	return uc.create(ctx, entity.RoleAdmin, name, email, password, "")
}

// ListUsers proveedores y auditores, cada grupo por fecha de alta.
func (uc *UserUseCase) ListUsers(ctx context.Context) (*dto.UsersListResponse, error) {
	vendors, err := uc.repo.ListByRole(ctx, entity.RoleVendor)
	if err != nil {
		return nil, err
	}
	auditors, err := uc.repo.ListByRole(ctx, entity.RoleAuditor)
	if err != nil {
		return nil, err
	}
	return &dto.UsersListResponse{
		Vendors:  presenter.Users(vendors),
		Auditors: presenter.Users(auditors),
	}, nil
}

func (uc *UserUseCase) create(ctx context.Context, role entity.Role, name, email, password, company string) (*dto.UserResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email y password son requeridos", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil || strings.ContainsAny(email, " <>") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return nil, fmt.Errorf("%w: password no puede superar %d bytes", domain.ErrInvalidInput, MaxPasswordLength)
	}
	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CompanyName:  company,
		CreatedAt:    time.Now().UTC(),
	}
	if role == entity.RoleAuditor {
		user.AssignedVendorIDs = []string{}
	}
	// el store revalida la unicidad: dos altas simultáneas con el mismo email no pasan ambas
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := presenter.User(user)
	return &out, nil
}
