package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/vendordocs-api/internal/application/dto"
	"github.com/jhoicas/vendordocs-api/internal/application/usecase"
	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
	"github.com/jhoicas/vendordocs-api/internal/infrastructure/memory"
)

func newUserUC(db *memory.DB) *usecase.UserUseCase {
	return usecase.NewUserUseCase(db.Users()).WithBcryptCost(bcrypt.MinCost)
}

func TestCreateAuditor_RolYAsignacionesVacias(t *testing.T) {
	db := memory.NewDB()
	uc := newUserUC(db)

	out, err := uc.CreateAuditor(context.Background(), dto.CreateAuditorRequest{
		Name: "Jane Auditor", Email: "jane@test.com", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "auditor", out.Role)
	require.NotNil(t, out.AssignedVendors)
	assert.Empty(t, *out.AssignedVendors)

	stored, err := db.Users().FindByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestCreateVendor_GuardaCompania(t *testing.T) {
	uc := newUserUC(memory.NewDB())

	out, err := uc.CreateVendor(context.Background(), dto.CreateVendorRequest{
		Name: "XYZ", Email: "xyz@test.com", Password: "secret123", CompanyName: "XYZ Ltd",
	})
	require.NoError(t, err)
	assert.Equal(t, "vendor", out.Role)
	assert.Equal(t, "XYZ Ltd", out.CompanyName)
	assert.Nil(t, out.AssignedVendors)
}

func TestCreate_EmailDuplicadoNoCreaRegistro(t *testing.T) {
	db := memory.NewDB()
	uc := newUserUC(db)
	ctx := context.Background()

	_, err := uc.CreateVendor(ctx, dto.CreateVendorRequest{Name: "A", Email: "dup@test.com", Password: "secret123"})
	require.NoError(t, err)

	// mismo email con otro rol también falla
	_, err = uc.CreateAuditor(ctx, dto.CreateAuditorRequest{Name: "B", Email: "dup@test.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	n, _ := db.Users().CountByRole(ctx, entity.RoleAuditor)
	assert.Equal(t, 0, n)
}

func TestCreate_AltasConcurrentesMismoEmail(t *testing.T) {
	db := memory.NewDB()
	uc := newUserUC(db)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateVendor(context.Background(), dto.CreateVendorRequest{
				Name: "V", Email: "race@test.com", Password: "secret123",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := newUserUC(memory.NewDB())
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateAuditorRequest
	}{
		{"sin nombre", dto.CreateAuditorRequest{Email: "a@test.com", Password: "secret123"}},
		{"sin email", dto.CreateAuditorRequest{Name: "A", Password: "secret123"}},
		{"email inválido", dto.CreateAuditorRequest{Name: "A", Email: "no-es-email", Password: "secret123"}},
		{"password corto", dto.CreateAuditorRequest{Name: "A", Email: "a@test.com", Password: "123"}},
		{"password largo", dto.CreateAuditorRequest{Name: "A", Email: "a@test.com", Password: strings.Repeat("a", usecase.MaxPasswordLength+1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateAuditor(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestListUsers_SeparaPorRol(t *testing.T) {
	db := memory.NewDB()
	uc := newUserUC(db)
	ctx := context.Background()

	_, err := uc.CreateAdmin(ctx, "Admin", "admin@test.com", "admin123")
	require.NoError(t, err)
	_, err = uc.CreateVendor(ctx, dto.CreateVendorRequest{Name: "V", Email: "v@test.com", Password: "secret123"})
	require.NoError(t, err)
	_, err = uc.CreateAuditor(ctx, dto.CreateAuditorRequest{Name: "A", Email: "a@test.com", Password: "secret123"})
	require.NoError(t, err)

	out, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, out.Vendors, 1)
	require.Len(t, out.Auditors, 1)
	assert.Equal(t, "v@test.com", out.Vendors[0].Email)
	assert.Equal(t, "a@test.com", out.Auditors[0].Email)
}

func TestListUsers_SinUsuariosDevuelveListasVacias(t *testing.T) {
	out, err := newUserUC(memory.NewDB()).ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out.Vendors)
	assert.NotNil(t, out.Auditors)
}
