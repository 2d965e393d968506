package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/vendordocs-api/internal/application/dto"
	"github.com/jhoicas/vendordocs-api/internal/domain"
)

// respondError traduce errores de dominio a status HTTP + dto.ErrorResponse.
// Los errores no reconocidos se registran y el cliente recibe un mensaje genérico.
func respondError(c *fiber.Ctx, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "error interno"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code, msg = fiber.StatusBadRequest, "EMAIL_EXISTS", "el email ya está registrado"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, code, msg = fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas"
	case errors.Is(err, domain.ErrUnauthenticated):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHENTICATED", "autenticación requerida"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusForbidden, "TOKEN_REJECTED", "token inválido o expirado"
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrConflict):
		status, code, msg = fiber.StatusConflict, "STATUS_CONFLICT", err.Error()
	case errors.Is(err, domain.ErrTooManyAttempts):
		status, code, msg = fiber.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "demasiados intentos fallidos, intente más tarde"
	default:
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("user_id", GetUserID(c)).
			Msg("error interno")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
