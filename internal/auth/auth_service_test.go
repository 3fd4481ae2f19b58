package auth_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/geraldDev01/onboarding-dashboard/internal/auth"
	autherrors "github.com/geraldDev01/onboarding-dashboard/internal/auth/errors"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	operatorEmail    = "admin@rebuhr.com"
	operatorPassword = "password123"
	secret           = "test-secret"
)

var start = time.Date(2030, time.June, 15, 9, 0, 0, 0, time.UTC)

// manualClock can be moved forward between calls.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type brokenRevocations struct{}

func (brokenRevocations) Revoke(context.Context, string, time.Time) error {
	return errors.New("store down")
}

func (brokenRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("store down")
}

func newOperator(t *testing.T) *auth.StaticOperator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(operatorPassword), bcrypt.MinCost)
	require.NoError(t, err)

	op, err := auth.NewStaticOperator(operatorEmail, "Admin", "", string(hash))
	require.NoError(t, err)
	return op
}

func newTestService(t *testing.T, clk *manualClock, revocations auth.RevocationStore) auth.Service {
	t.Helper()
	if revocations == nil {
		revocations = auth.NewMemoryRevocationStore(clk)
	}
	return auth.NewService(newOperator(t), revocations, secret, time.Hour, clk, zap.NewNop())
}

func TestNewStaticOperator(t *testing.T) {
	_, err := auth.NewStaticOperator("", "Admin", "pw", "")
	assert.Error(t, err)

	_, err = auth.NewStaticOperator(operatorEmail, "Admin", "", "")
	assert.Error(t, err)

	_, err = auth.NewStaticOperator(operatorEmail, "Admin", "", "not-a-bcrypt-hash")
	assert.Error(t, err)

	op, err := auth.NewStaticOperator(operatorEmail, "Admin", operatorPassword, "")
	require.NoError(t, err)
	identity, ok := op.VerifyCredentials(context.Background(), operatorEmail, operatorPassword)
	assert.True(t, ok)
	assert.Equal(t, "Admin", identity.Name)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		svc := newTestService(t, &manualClock{now: start}, nil)

		token, user, err := svc.Login(ctx, operatorEmail, operatorPassword)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, 3, len(strings.Split(token, ".")))
		assert.Equal(t, auth.UserResponse{Email: operatorEmail, Name: "Admin"}, user)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		svc := newTestService(t, &manualClock{now: start}, nil)

		_, _, errPw := svc.Login(ctx, operatorEmail, "wrong-password")
		_, _, errEmail := svc.Login(ctx, "someone@rebuhr.com", operatorPassword)

		assert.ErrorIs(t, errPw, autherrors.ErrInvalidCredentials)
		assert.ErrorIs(t, errEmail, autherrors.ErrInvalidCredentials)
		assert.Equal(t, errPw.Error(), errEmail.Error())
	})

	t.Run("email match is exact", func(t *testing.T) {
		svc := newTestService(t, &manualClock{now: start}, nil)

		_, _, err := svc.Login(ctx, "ADMIN@rebuhr.com", operatorPassword)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_CurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		svc := newTestService(t, &manualClock{now: start}, nil)
		token, _, err := svc.Login(ctx, operatorEmail, operatorPassword)
		require.NoError(t, err)

		identity, err := svc.CurrentUser(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, operatorEmail, identity.Email)
		assert.Equal(t, "Admin", identity.Name)
	})

	t.Run("empty token", func(t *testing.T) {
		svc := newTestService(t, &manualClock{now: start}, nil)
		_, err := svc.CurrentUser(ctx, "")
		assert.ErrorIs(t, err, autherrors.ErrNotAuthenticated)
	})

	t.Run("garbage and foreign tokens", func(t *testing.T) {
		clk := &manualClock{now: start}
		svc := newTestService(t, clk, nil)
		other := auth.NewService(newOperator(t), auth.NewMemoryRevocationStore(clk), "other-secret", time.Hour, clk)

		foreign, _, err := other.Login(ctx, operatorEmail, operatorPassword)
		require.NoError(t, err)

		_, err = svc.CurrentUser(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
		_, err = svc.CurrentUser(ctx, foreign)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		clk := &manualClock{now: start}
		svc := newTestService(t, clk, nil)
		token, _, err := svc.Login(ctx, operatorEmail, operatorPassword)
		require.NoError(t, err)

		clk.Advance(59 * time.Minute)
		_, err = svc.CurrentUser(ctx, token)
		require.NoError(t, err)

		clk.Advance(2 * time.Minute)
		_, err = svc.CurrentUser(ctx, token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("revocation store down fails closed", func(t *testing.T) {
		svc := newTestService(t, &manualClock{now: start}, brokenRevocations{})
		token, _, err := svc.Login(ctx, operatorEmail, operatorPassword)
		require.NoError(t, err)

		_, err = svc.CurrentUser(ctx, token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the token", func(t *testing.T) {
		svc := newTestService(t, &manualClock{now: start}, nil)
		token, _, err := svc.Login(ctx, operatorEmail, operatorPassword)
		require.NoError(t, err)
		second, _, err := svc.Login(ctx, operatorEmail, operatorPassword)
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, token))

		_, err = svc.CurrentUser(ctx, token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)

		// Other sessions stay valid.
		_, err = svc.CurrentUser(ctx, second)
		assert.NoError(t, err)
	})

	t.Run("nothing to revoke", func(t *testing.T) {
		svc := newTestService(t, &manualClock{now: start}, nil)
		assert.NoError(t, svc.Logout(ctx, ""))
		assert.NoError(t, svc.Logout(ctx, "garbage"))
	})

	t.Run("store failure is reported", func(t *testing.T) {
		clk := &manualClock{now: start}
		issuer := newTestService(t, clk, nil)
		token, _, err := issuer.Login(ctx, operatorEmail, operatorPassword)
		require.NoError(t, err)

		svc := newTestService(t, clk, brokenRevocations{})
		err = svc.Logout(ctx, token)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeServiceUnavailable, appErr.Code)
	})
}

func TestService_SessionTTL(t *testing.T) {
	svc := newTestService(t, &manualClock{now: start}, nil)
	assert.Equal(t, time.Hour, svc.SessionTTL())
}
