package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupThrottle(t *testing.T, max int) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := NewClient(mr.Addr(), "")
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client, max, 15*time.Minute), mr
}

func TestThrottle_BloqueaTrasMaxFallos(t *testing.T) {
	th, _ := setupThrottle(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := th.Allow(ctx, "a@test.com")
		require.NoError(t, err)
		assert.True(t, ok, "intento %d debe permitirse", i+1)
		require.NoError(t, th.RecordFailure(ctx, "a@test.com"))
	}

	ok, err := th.Allow(ctx, "a@test.com")
	require.NoError(t, err)
	assert.False(t, ok)

	// otro email no se ve afectado
	ok, err = th.Allow(ctx, "b@test.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestThrottle_EmailDistingueMayusculas(t *testing.T) {
	th, _ := setupThrottle(t, 1)
	ctx := context.Background()

	require.NoError(t, th.RecordFailure(ctx, "Bob@test.com"))
	ok, err := th.Allow(ctx, "Bob@test.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = th.Allow(ctx, "bob@test.com")
	require.NoError(t, err)
	assert.True(t, ok, "otra cuenta no hereda los fallos")
}

func TestThrottle_VentanaExpira(t *testing.T) {
	th, mr := setupThrottle(t, 1)
	ctx := context.Background()

	require.NoError(t, th.RecordFailure(ctx, "a@test.com"))
	ok, _ := th.Allow(ctx, "a@test.com")
	assert.False(t, ok)

	mr.FastForward(16 * time.Minute)

	ok, err := th.Allow(ctx, "a@test.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestThrottle_ResetLimpiaContador(t *testing.T) {
	th, mr := setupThrottle(t, 2)
	ctx := context.Background()

	require.NoError(t, th.RecordFailure(ctx, "a@test.com"))
	require.NoError(t, th.RecordFailure(ctx, "a@test.com"))
	ok, _ := th.Allow(ctx, "a@test.com")
	assert.False(t, ok)

	require.NoError(t, th.Reset(ctx, "a@test.com"))
	assert.False(t, mr.Exists(keyPrefix+"a@test.com"))
	ok, _ = th.Allow(ctx, "a@test.com")
	assert.True(t, ok)
}

func TestThrottle_RedisCaidoDevuelveError(t *testing.T) {
	th, mr := setupThrottle(t, 2)
	mr.Close()

	_, err := th.Allow(context.Background(), "a@test.com")
	assert.Error(t, err)
}
