package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendordocs-api/internal/application/dto"
	"github.com/jhoicas/vendordocs-api/internal/application/usecase"
	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/infrastructure/memory"
)

type fixture struct {
	db        *memory.DB
	assign    *usecase.AssignmentUseCase
	auditorID string
	vendorID  string
	otherID   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := memory.NewDB()
	users := newUserUC(db)
	ctx := context.Background()

	aud, err := users.CreateAuditor(ctx, dto.CreateAuditorRequest{Name: "John Auditor", Email: "auditor@test.com", Password: "auditor123"})
	require.NoError(t, err)
	v1, err := users.CreateVendor(ctx, dto.CreateVendorRequest{Name: "ABC Corp", Email: "vendor@test.com", Password: "vendor123"})
	require.NoError(t, err)
	v2, err := users.CreateVendor(ctx, dto.CreateVendorRequest{Name: "XYZ", Email: "xyz@test.com", Password: "vendor123"})
	require.NoError(t, err)

	return fixture{db: db, assign: usecase.NewAssignmentUseCase(db.Users()), auditorID: aud.ID, vendorID: v1.ID, otherID: v2.ID}
}

func TestAssign_Idempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := dto.AssignVendorRequest{AuditorID: f.auditorID, VendorID: f.vendorID}

	require.NoError(t, f.assign.Assign(ctx, in))
	require.NoError(t, f.assign.Assign(ctx, in))

	ids, err := f.db.Users().AssignedVendorIDs(ctx, f.auditorID)
	require.NoError(t, err)
	assert.Equal(t, []string{f.vendorID}, ids)
}

func TestAssign_AuditorInexistente(t *testing.T) {
	f := newFixture(t)

	err := f.assign.Assign(context.Background(), dto.AssignVendorRequest{AuditorID: "no-existe", VendorID: f.vendorID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// un proveedor no es auditor
	err = f.assign.Assign(context.Background(), dto.AssignVendorRequest{AuditorID: f.otherID, VendorID: f.vendorID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssign_ProveedorInvalido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.assign.Assign(ctx, dto.AssignVendorRequest{AuditorID: f.auditorID, VendorID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = f.assign.Assign(ctx, dto.AssignVendorRequest{AuditorID: f.auditorID, VendorID: f.auditorID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un auditor no se puede asignar como proveedor")

	err = f.assign.Assign(ctx, dto.AssignVendorRequest{AuditorID: f.auditorID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssignedVendors_SoloLosAsignados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.assign.AssignedVendors(ctx, f.auditorID)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	require.NoError(t, f.assign.Assign(ctx, dto.AssignVendorRequest{AuditorID: f.auditorID, VendorID: f.vendorID}))

	out, err := f.assign.AssignedVendors(ctx, f.auditorID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ABC Corp", out[0].Name)
}
