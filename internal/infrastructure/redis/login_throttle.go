// Package redis limita los intentos fallidos de login por email usando contadores con TTL.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "vendordocs:login:fail:"

// LoginThrottle cuenta fallos por email dentro de una ventana fija.
// La ventana empieza con el primer fallo y se reinicia al expirar la clave.
type LoginThrottle struct {
	client      goredis.Cmdable
	maxAttempts int
	window      time.Duration
}

// NewClient construye el cliente go-redis.
func NewClient(addr, password string) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	})
}

// NewLoginThrottle construye el limitador. maxAttempts <= 0 usa 5.
func NewLoginThrottle(client goredis.Cmdable, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow false cuando el email ya acumuló maxAttempts fallos en la ventana.
func (t *LoginThrottle) Allow(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, key(email)).Int()
	if errors.Is(err, goredis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("leer intentos: %w", err)
	}
	return n < t.maxAttempts, nil
}

// RecordFailure suma un fallo; el primero fija el TTL de la ventana.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	k := key(email)
	n, err := t.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("incrementar intentos: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, k, t.window).Err(); err != nil {
			return fmt.Errorf("fijar ventana: %w", err)
		}
	}
	return nil
}

// Reset borra el contador tras un login correcto.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, key(email)).Err(); err != nil {
		return fmt.Errorf("reiniciar intentos: %w", err)
	}
	return nil
}

// key usa el email tal como llega: la búsqueda de usuarios distingue mayúsculas.
func key(email string) string {
	return keyPrefix + email
}
