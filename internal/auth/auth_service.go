package auth

import (
	"context"
	"errors"
	"time"

	autherrors "github.com/geraldDev01/onboarding-dashboard/internal/auth/errors"
	"github.com/geraldDev01/onboarding-dashboard/internal/domain"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/clock"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (token string, user UserResponse, err error)

	CurrentUser(ctx context.Context, token string) (domain.Identity, error)

	Logout(ctx context.Context, token string) error

	SessionTTL() time.Duration
}

type service struct {
	verifier    CredentialVerifier
	revocations RevocationStore
	secret      []byte
	ttl         time.Duration
	clock       clock.Clock
	logger      *zap.Logger
}

func NewService(
	verifier CredentialVerifier,
	revocations RevocationStore,
	secret string,
	ttl time.Duration,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		verifier:    verifier,
		revocations: revocations,
		secret:      []byte(secret),
		ttl:         ttl,
		clock:       clk,
		logger:      l,
	}
}

func (s *service) SessionTTL() time.Duration {
	return s.ttl
}

func (s *service) Login(ctx context.Context, email, password string) (string, UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	// 1. Verify credentials
	identity, ok := s.verifier.VerifyCredentials(ctx, email, password)
	if !ok {
		log.Info("login rejected")
		return "", UserResponse{}, autherrors.ErrInvalidCredentials
	}

	// 2. Mint token
	token, err := s.generateToken(identity)
	if err != nil {
		log.Error("failed to sign session token", zap.Error(err))
		return "", UserResponse{}, autherrors.ErrTokenGenerationFailed
	}

	log.Info("login succeeded", zap.String("email", identity.Email))
	return token, UserResponse{Email: identity.Email, Name: identity.Name}, nil
}

func (s *service) CurrentUser(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, autherrors.ErrNotAuthenticated
	}

	claims, err := s.parse(token)
	if err != nil {
		return domain.Identity{}, autherrors.ErrInvalidToken
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.jti)
	if err != nil {
		// Fail closed: an unreachable revocation store cannot vouch for the token.
		contextutil.GetLogger(ctx, s.logger).Warn("revocation check failed", zap.Error(err))
		return domain.Identity{}, autherrors.ErrInvalidToken
	}
	if revoked {
		return domain.Identity{}, autherrors.ErrInvalidToken
	}

	return claims.identity, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.parse(token)
	if err != nil {
		// Already unusable, nothing to revoke.
		return nil
	}

	if err := s.revocations.Revoke(ctx, claims.jti, claims.expiresAt); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to revoke token", zap.Error(err))
		return apperror.Wrap(err, autherrors.ErrLogoutFailed.Code, autherrors.ErrLogoutFailed.Message, autherrors.ErrLogoutFailed.HTTPStatus)
	}
	return nil
}

type sessionClaims struct {
	identity  domain.Identity
	jti       string
	expiresAt time.Time
}

func (s *service) generateToken(identity domain.Identity) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"email": identity.Email,
		"name":  identity.Name,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *service) parse(tokenString string) (sessionClaims, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !token.Valid {
		return sessionClaims{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return sessionClaims{}, errors.New("invalid token claims")
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	jti, _ := claims["jti"].(string)
	if email == "" || jti == "" {
		return sessionClaims{}, errors.New("missing session claims")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return sessionClaims{}, errors.New("missing expiry")
	}

	return sessionClaims{
		identity:  domain.Identity{Email: email, Name: name},
		jti:       jti,
		expiresAt: exp.Time,
	}, nil
}
