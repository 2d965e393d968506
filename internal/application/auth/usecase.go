package auth

import (
	"context"

	"github.com/jhoicas/vendordocs-api/internal/application/dto"
	"github.com/jhoicas/vendordocs-api/internal/application/presenter"
	"github.com/jhoicas/vendordocs-api/internal/domain"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
	"github.com/jhoicas/vendordocs-api/pkg/jwt"
	"github.com/jhoicas/vendordocs-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// Resultados de login para métricas.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeThrottled          = "throttled"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// LoginThrottle limita intentos fallidos por email (Redis). Opcional.
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// LoginMetrics cuenta intentos de login por resultado. Opcional.
type LoginMetrics interface {
	LoginAttempt(outcome string)
}

// dummyHash se compara cuando el email no existe para no delatarlo por tiempo de respuesta.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("vendordocs-dummy"), bcrypt.DefaultCost)

// AuthUseCase casos de uso de autenticación: login y usuario actual.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	throttle LoginThrottle
	metrics  LoginMetrics
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. throttle y metrics pueden ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, throttle LoginThrottle, metrics LoginMetrics, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, throttle: throttle, metrics: metrics, log: log}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Un fallo del limitador (Redis caído) se registra y no bloquea el login.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.throttle != nil {
		ok, err := uc.throttle.Allow(ctx, in.Email)
		if err != nil {
			uc.log.Warn().Err(err).Msg("limitador de login no disponible")
		} else if !ok {
			uc.count(OutcomeThrottled)
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		uc.fail(ctx, in.Email)
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.fail(ctx, in.Email)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role.String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if uc.throttle != nil {
		if err := uc.throttle.Reset(ctx, in.Email); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo reiniciar el contador de login")
		}
	}
	uc.count(OutcomeSuccess)
	return &dto.LoginResponse{
		Token: token,
		User:  presenter.User(user),
	}, nil
}

// Me devuelve el usuario del token. ErrUserNotFound si ya no existe.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := presenter.User(user)
	return &out, nil
}

func (uc *AuthUseCase) fail(ctx context.Context, email string) {
	uc.count(OutcomeInvalidCredentials)
	if uc.throttle == nil {
		return
	}
	if err := uc.throttle.RecordFailure(ctx, email); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo registrar el intento fallido")
	}
}

func (uc *AuthUseCase) count(outcome string) {
	if uc.metrics != nil {
		uc.metrics.LoginAttempt(outcome)
	}
}
