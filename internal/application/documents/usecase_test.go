package documents_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendordocs-api/internal/application/documents"
	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/access"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
	"github.com/jhoicas/vendordocs-api/internal/infrastructure/memory"
	"github.com/jhoicas/vendordocs-api/internal/infrastructure/storage"
	"github.com/jhoicas/vendordocs-api/pkg/logger"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type failingDocs struct {
	repository.DocumentRepository
}

func (failingDocs) Create(context.Context, *entity.Document) error {
	return errors.New("insert falló")
}

type spyStorage struct {
	*storage.FileStorage
	deleted []string
}

func (s *spyStorage) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return s.FileStorage.Delete(ctx, key)
}

type recordingMetrics struct {
	uploads []string
	reviews []string
}

func (m *recordingMetrics) DocumentUploaded(category string, _ int64) {
	m.uploads = append(m.uploads, category)
}
func (m *recordingMetrics) DocumentReviewed(status, role string) {
	m.reviews = append(m.reviews, status+"/"+role)
}

// ── Fixture ───────────────────────────────────────────────────────────────────

type env struct {
	db      *memory.DB
	fs      afero.Fs
	uc      *documents.UseCase
	metrics *recordingMetrics

	admin, auditor, lonelyAuditor, vendor, otherVendor access.Subject
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	db := memory.NewDB()
	users := db.Users()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, u := range []*entity.User{
		{ID: "adm", Email: "admin@test.com", Name: "Admin", Role: entity.RoleAdmin},
		{ID: "aud", Email: "auditor@test.com", Name: "John Auditor", Role: entity.RoleAuditor},
		{ID: "aud2", Email: "aud2@test.com", Name: "Sin asignar", Role: entity.RoleAuditor},
		{ID: "v1", Email: "vendor@test.com", Name: "ABC Corp", Role: entity.RoleVendor},
		{ID: "v2", Email: "xyz@test.com", Name: "XYZ", Role: entity.RoleVendor},
	} {
		u.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, users.Create(ctx, u))
	}
	require.NoError(t, users.AddAssignment(ctx, "aud", "v1"))

	fs := afero.NewMemMapFs()
	m := &recordingMetrics{}
	clock := base
	uc := documents.NewUseCase(db.Documents(), users, storage.NewFileStorage(fs), m, logger.NewWithWriter(io.Discard, "error")).
		WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		})

	return &env{
		db: db, fs: fs, uc: uc, metrics: m,
		admin:         access.Subject{UserID: "adm", Role: entity.RoleAdmin},
		auditor:       access.Subject{UserID: "aud", Role: entity.RoleAuditor, AssignedVendorIDs: []string{"v1"}},
		lonelyAuditor: access.Subject{UserID: "aud2", Role: entity.RoleAuditor},
		vendor:        access.Subject{UserID: "v1", Role: entity.RoleVendor},
		otherVendor:   access.Subject{UserID: "v2", Role: entity.RoleVendor},
	}
}

func (e *env) upload(t *testing.T, who access.Subject, name, category string) string {
	t.Helper()
	out, err := e.uc.Upload(context.Background(), who, documents.UploadInput{
		Filename: name, ContentType: "application/pdf", Size: 4, Content: strings.NewReader("data"), Category: category,
	})
	require.NoError(t, err)
	return out.ID
}

// ── Upload ────────────────────────────────────────────────────────────────────

func TestUpload_ProveedorQuedaPending(t *testing.T) {
	e := newEnv(t)

	out, err := e.uc.Upload(context.Background(), e.vendor, documents.UploadInput{
		Filename: "invoice.pdf", Content: strings.NewReader("%PDF"), Size: 4, Category: "Invoice",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "invoice", out.Category)
	assert.Equal(t, "invoice.pdf", out.Filename)
	assert.Equal(t, "v1", out.VendorID)
	assert.True(t, strings.HasPrefix(out.Filepath, "uploads/v1/"), out.Filepath)

	data, err := afero.ReadFile(e.fs, "/"+strings.TrimPrefix(out.Filepath, "uploads/"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
	assert.Equal(t, []string{"invoice"}, e.metrics.uploads)
}

func TestUpload_CategoriaDesconocidaEsOther(t *testing.T) {
	e := newEnv(t)
	for _, c := range []string{"", "contrato", "  REPORT  "} {
		out, err := e.uc.Upload(context.Background(), e.vendor, documents.UploadInput{
			Filename: "a.txt", Content: strings.NewReader("x"), Category: c,
		})
		require.NoError(t, err)
		if strings.TrimSpace(c) == "REPORT" {
			assert.Equal(t, "report", out.Category)
		} else {
			assert.Equal(t, "other", out.Category)
		}
	}
}

func TestUpload_SinArchivo(t *testing.T) {
	e := newEnv(t)
	_, err := e.uc.Upload(context.Background(), e.vendor, documents.UploadInput{Filename: "a.pdf"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.Upload(context.Background(), e.vendor, documents.UploadInput{Content: strings.NewReader("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpload_SoloProveedores(t *testing.T) {
	e := newEnv(t)
	for _, who := range []access.Subject{e.admin, e.auditor} {
		_, err := e.uc.Upload(context.Background(), who, documents.UploadInput{
			Filename: "a.pdf", Content: strings.NewReader("x"),
		})
		assert.ErrorIs(t, err, domain.ErrForbidden, "rol %s", who.Role)
	}
}

func TestUpload_FalloDeRegistroBorraArchivo(t *testing.T) {
	db := memory.NewDB()
	fs := afero.NewMemMapFs()
	spy := &spyStorage{FileStorage: storage.NewFileStorage(fs)}
	uc := documents.NewUseCase(failingDocs{db.Documents()}, db.Users(), spy, nil, logger.NewWithWriter(io.Discard, "error"))

	_, err := uc.Upload(context.Background(), access.Subject{UserID: "v1", Role: entity.RoleVendor}, documents.UploadInput{
		Filename: "a.pdf", Content: strings.NewReader("x"),
	})
	require.Error(t, err)
	require.Len(t, spy.deleted, 1)

	exists, _ := afero.Exists(fs, "/"+spy.deleted[0])
	assert.False(t, exists, "no deben quedar archivos huérfanos")
}

// ── List ──────────────────────────────────────────────────────────────────────

func TestList_VisibilidadPorRol(t *testing.T) {
	e := newEnv(t)
	d1 := e.upload(t, e.vendor, "a.pdf", "invoice")
	d2 := e.upload(t, e.otherVendor, "b.pdf", "report")
	d3 := e.upload(t, e.vendor, "c.pdf", "other")
	ctx := context.Background()

	ids := func(who access.Subject) []string {
		list, err := e.uc.List(ctx, who)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, d := range list {
			out = append(out, d.ID)
		}
		return out
	}

	assert.Equal(t, []string{d3, d2, d1}, ids(e.admin), "admin ve todo, más reciente primero")
	assert.Equal(t, []string{d3, d1}, ids(e.auditor), "auditor ve solo proveedores asignados")
	assert.Empty(t, ids(e.lonelyAuditor), "auditor sin asignaciones no ve nada")
	assert.Equal(t, []string{d3, d1}, ids(e.vendor))
	assert.Equal(t, []string{d2}, ids(e.otherVendor))
}

func TestList_IncluyeVendorName(t *testing.T) {
	e := newEnv(t)
	e.upload(t, e.vendor, "a.pdf", "invoice")

	list, err := e.uc.List(context.Background(), e.admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ABC Corp", list[0].VendorName)
}

// ── SetStatus ─────────────────────────────────────────────────────────────────

func TestSetStatus_AuditorAsignadoAprueba(t *testing.T) {
	e := newEnv(t)
	id := e.upload(t, e.vendor, "a.pdf", "invoice")

	out, err := e.uc.SetStatus(context.Background(), e.auditor, id, "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", out.Status)
	assert.Equal(t, "aud", out.ReviewedBy)
	assert.NotNil(t, out.ReviewedAt)
	assert.Equal(t, "ABC Corp", out.VendorName)
	assert.Equal(t, []string{"approved/auditor"}, e.metrics.reviews)
}

func TestSetStatus_Permisos(t *testing.T) {
	e := newEnv(t)
	mine := e.upload(t, e.vendor, "a.pdf", "invoice")
	other := e.upload(t, e.otherVendor, "b.pdf", "invoice")
	ctx := context.Background()

	_, err := e.uc.SetStatus(ctx, e.vendor, mine, "approved")
	assert.ErrorIs(t, err, domain.ErrForbidden, "el proveedor nunca revisa")

	_, err = e.uc.SetStatus(ctx, e.auditor, other, "approved")
	assert.ErrorIs(t, err, domain.ErrForbidden, "auditor sin el proveedor asignado")

	_, err = e.uc.SetStatus(ctx, e.lonelyAuditor, mine, "rejected")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := e.uc.SetStatus(ctx, e.admin, other, "rejected")
	require.NoError(t, err, "admin revisa cualquier documento")
	assert.Equal(t, "rejected", out.Status)
}

func TestSetStatus_ErroresDeEntradaYEstado(t *testing.T) {
	e := newEnv(t)
	id := e.upload(t, e.vendor, "a.pdf", "invoice")
	ctx := context.Background()

	_, err := e.uc.SetStatus(ctx, e.admin, id, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.uc.SetStatus(ctx, e.admin, id, "pending")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.SetStatus(ctx, e.admin, "no-existe", "approved")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.uc.SetStatus(ctx, e.admin, id, "approved")
	require.NoError(t, err)
	_, err = e.uc.SetStatus(ctx, e.auditor, id, "rejected")
	assert.ErrorIs(t, err, domain.ErrConflict, "un documento revisado no vuelve a revisarse")

	doc, err := e.db.Documents().FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusApproved, doc.Status)
}

func TestFilterFor(t *testing.T) {
	f, err := documents.FilterFor(access.Subject{UserID: "aud2", Role: entity.RoleAuditor}, 5)
	require.NoError(t, err)
	assert.True(t, f.MatchesNone())
	assert.Equal(t, 5, f.Limit)

	f, err = documents.FilterFor(access.Subject{UserID: "adm", Role: entity.RoleAdmin}, 0)
	require.NoError(t, err)
	assert.True(t, f.AllVendors)

	_, err = documents.FilterFor(access.Subject{UserID: "x", Role: "root"}, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
