package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_EscribeBajoCarpetaDelProveedor(t *testing.T) {
	fs := afero.NewMemMapFs()
	st := NewFileStorage(fs)

	key, err := st.Save(context.Background(), "vendor-1", "Factura Marzo.PDF", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "vendor-1/"), key)
	assert.True(t, strings.HasSuffix(key, "-factura-marzo.pdf"), key)

	data, err := afero.ReadFile(fs, "/"+key)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestSave_MismoNombreNoColisiona(t *testing.T) {
	st := NewFileStorage(afero.NewMemMapFs())
	ctx := context.Background()

	k1, err := st.Save(ctx, "v", "a.txt", strings.NewReader("uno"))
	require.NoError(t, err)
	k2, err := st.Save(ctx, "v", "a.txt", strings.NewReader("dos"))
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestSave_NombreConRutaNoEscapa(t *testing.T) {
	st := NewFileStorage(afero.NewMemMapFs())

	key, err := st.Save(context.Background(), "../otro", `..\..\etc\passwd`, strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, key, "..")
	assert.True(t, strings.HasPrefix(key, "otro/"), key)
}

func TestOpenYDelete(t *testing.T) {
	st := NewFileStorage(afero.NewMemMapFs())
	ctx := context.Background()

	key, err := st.Save(ctx, "v", "cert.png", strings.NewReader("png"))
	require.NoError(t, err)

	rc, err := st.Open(ctx, key)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "png", string(data))

	require.NoError(t, st.Delete(ctx, key))
	_, err = st.Open(ctx, key)
	assert.Error(t, err)

	// borrar dos veces no falla
	assert.NoError(t, st.Delete(ctx, key))
}

func TestHTTPFileSystem_SirveArchivo(t *testing.T) {
	st := NewFileStorage(afero.NewMemMapFs())
	key, err := st.Save(context.Background(), "v", "r.txt", strings.NewReader("hola"))
	require.NoError(t, err)

	f, err := st.HTTPFileSystem().Open("/" + key)
	require.NoError(t, err)
	defer f.Close()
	data, _ := io.ReadAll(f)
	assert.Equal(t, "hola", string(data))
}
