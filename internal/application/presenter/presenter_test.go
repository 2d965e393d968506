package presenter_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendordocs-api/internal/application/presenter"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
	"github.com/jhoicas/vendordocs-api/internal/infrastructure/memory"
)

func TestUser_AuditorSinAsignacionesSerializaListaVacia(t *testing.T) {
	u := &entity.User{ID: "a1", Email: "a@test.com", PasswordHash: "secreto", Name: "A", Role: entity.RoleAuditor}

	raw, err := json.Marshal(presenter.User(u))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, []interface{}{}, body["assignedVendors"])
	assert.NotContains(t, string(raw), "secreto")
	assert.NotContains(t, string(raw), "password")
}

func TestUser_VendorSinAssignedVendors(t *testing.T) {
	u := &entity.User{ID: "v1", Name: "ABC Corp", Role: entity.RoleVendor, CompanyName: "ABC Corporation"}

	raw, err := json.Marshal(presenter.User(u))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "assignedVendors")
	assert.Contains(t, string(raw), `"companyName":"ABC Corporation"`)
}

func TestDocuments_AnotaNombreDelProveedor(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDB()
	users := db.Users()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "v1", Email: "v@test.com", Name: "ABC Corp", Role: entity.RoleVendor}))

	now := time.Now()
	docs := []*entity.Document{
		{ID: "d1", VendorID: "v1", Filename: "a.pdf", StorageLocation: "v1/x-a.pdf", Status: entity.DocumentStatusPending, UploadDate: now},
		{ID: "d2", VendorID: "borrado", Filename: "b.pdf", StorageLocation: "borrado/y-b.pdf", Status: entity.DocumentStatusPending, UploadDate: now},
	}

	out, err := presenter.Documents(ctx, users, docs)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "ABC Corp", out[0].VendorName)
	assert.Equal(t, "uploads/v1/x-a.pdf", out[0].Filepath)
	assert.Equal(t, presenter.UnknownVendor, out[1].VendorName)
}

func TestDocuments_ListaVaciaNoEsNil(t *testing.T) {
	out, err := presenter.Documents(context.Background(), memory.NewDB().Users(), nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
