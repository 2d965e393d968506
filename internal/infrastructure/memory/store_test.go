package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
	"github.com/jhoicas/vendordocs-api/internal/infrastructure/memory"
)

func newUser(id, email string, role entity.Role) *entity.User {
	return &entity.User{ID: id, Email: email, Name: id, Role: role, PasswordHash: "x", CreatedAt: time.Now()}
}

func TestUserRepo_EmailUnico(t *testing.T) {
	ctx := context.Background()
	users := memory.NewDB().Users()

	require.NoError(t, users.Create(ctx, newUser("v1", "v@x.com", entity.RoleVendor)))
	err := users.Create(ctx, newUser("v2", "v@x.com", entity.RoleVendor))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// el email distingue mayúsculas tal como se guardó
	require.NoError(t, users.Create(ctx, newUser("v3", "V@x.com", entity.RoleVendor)))

	n, err := users.CountByRole(ctx, entity.RoleVendor)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUserRepo_AddAssignmentIdempotente(t *testing.T) {
	ctx := context.Background()
	users := memory.NewDB().Users()
	require.NoError(t, users.Create(ctx, newUser("au", "a@x.com", entity.RoleAuditor)))

	require.NoError(t, users.AddAssignment(ctx, "au", "v1"))
	require.NoError(t, users.AddAssignment(ctx, "au", "v1"))

	ids, err := users.AssignedVendorIDs(ctx, "au")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, ids)

	assert.ErrorIs(t, users.AddAssignment(ctx, "nadie", "v1"), domain.ErrNotFound)
}

func TestUserRepo_AddAssignmentConcurrenteNoPierdeEscrituras(t *testing.T) {
	ctx := context.Background()
	users := memory.NewDB().Users()
	require.NoError(t, users.Create(ctx, newUser("au", "a@x.com", entity.RoleAuditor)))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = users.AddAssignment(ctx, "au", fmt.Sprintf("v%d", i%10))
		}(i)
	}
	wg.Wait()

	ids, err := users.AssignedVendorIDs(ctx, "au")
	require.NoError(t, err)
	assert.Len(t, ids, 10)
}

func TestUserRepo_AddAssignmentRechazaNoAuditor(t *testing.T) {
	ctx := context.Background()
	users := memory.NewDB().Users()
	require.NoError(t, users.Create(ctx, newUser("v1", "v@x.com", entity.RoleVendor)))

	assert.ErrorIs(t, users.AddAssignment(ctx, "v1", "v2"), domain.ErrNotFound)
}

func TestDocumentRepo_ListFiltraYOrdena(t *testing.T) {
	ctx := context.Background()
	docs := memory.NewDB().Documents()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, vendor := range []string{"v1", "v2", "v1", "v1"} {
		require.NoError(t, docs.Create(ctx, &entity.Document{
			ID: fmt.Sprintf("d%d", i), VendorID: vendor, Status: entity.DocumentStatusPending,
			UploadDate: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	list, err := docs.List(ctx, repository.DocumentFilter{VendorIDs: []string{"v1"}})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "d3", list[0].ID, "más reciente primero")
	assert.Equal(t, "d0", list[2].ID)

	list, err = docs.List(ctx, repository.DocumentFilter{AllVendors: true, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = docs.List(ctx, repository.DocumentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "filtro sin proveedores no devuelve nada")
}

func TestDocumentRepo_UpdateStatusCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	docs := memory.NewDB().Documents()
	require.NoError(t, docs.Create(ctx, &entity.Document{ID: "d1", VendorID: "v1", Status: entity.DocumentStatusPending}))

	now := time.Now()
	updated, err := docs.UpdateStatus(ctx, "d1", repository.StatusChange{
		From: entity.DocumentStatusPending, To: entity.DocumentStatusApproved, ReviewerID: "au", At: now,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusApproved, updated.Status)
	assert.Equal(t, "au", updated.ReviewedBy)
	require.NotNil(t, updated.ReviewedAt)

	_, err = docs.UpdateStatus(ctx, "d1", repository.StatusChange{
		From: entity.DocumentStatusPending, To: entity.DocumentStatusRejected, ReviewerID: "au", At: now,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = docs.UpdateStatus(ctx, "nope", repository.StatusChange{From: entity.DocumentStatusPending})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	st, err := docs.Stats(ctx, repository.DocumentFilter{VendorIDs: []string{"v1"}})
	require.NoError(t, err)
	assert.Equal(t, repository.DocumentStats{Total: 1, Approved: 1}, st)
}
