package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dealbridge/internal/config"
	"dealbridge/internal/domain"
	"dealbridge/internal/mocks"
	"dealbridge/internal/service/auth"
)

type authFixture struct {
	userRepo    *mocks.UserRepository
	sessionRepo *mocks.SessionRepository
	emailSvc    *mocks.EmailService
	svc         auth.Service
}

func newAuthFixture() *authFixture {
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}

	f := &authFixture{
		userRepo:    new(mocks.UserRepository),
		sessionRepo: new(mocks.SessionRepository),
		emailSvc:    new(mocks.EmailService),
	}
	f.svc = auth.NewService(f.userRepo, f.sessionRepo, f.emailSvc, cfg)

	f.emailSvc.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	return f
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	input := domain.CreateUserInput{
		Email:    "seller@example.com",
		Password: "s3cret-pass",
		FullName: "Sam Seller",
		Role:     string(domain.RoleSeller),
	}

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("ExistsByEmail", ctx, input.Email).Return(false, nil)
		f.userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == input.Email && u.IsActive && u.PasswordHash != input.Password
		})).Return(nil)
		f.sessionRepo.On("Create", ctx, mock.Anything).Return(nil)

		user, tokens, err := f.svc.Register(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, input.Email, user.Email)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
	})

	t.Run("admin role is refused", func(t *testing.T) {
		f := newAuthFixture()
		bad := input
		bad.Role = string(domain.RoleAdmin)

		_, _, err := f.svc.Register(ctx, bad)

		assert.ErrorIs(t, err, auth.ErrInvalidRole)
		f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("ExistsByEmail", ctx, input.Email).Return(true, nil)

		_, _, err := f.svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrEmailExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	password := "s3cret-pass"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "seller@example.com",
		PasswordHash: string(hash),
		Role:         string(domain.RoleSeller),
		IsActive:     true,
	}

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)
		f.sessionRepo.On("Create", ctx, mock.Anything).Return(nil)

		got, tokens, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: password})

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		claims, err := f.svc.ValidateAccessToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, domain.RoleSeller, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "nope"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: "ghost@example.com", Password: password})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		f := newAuthFixture()
		inactive := *user
		inactive.IsActive = false
		f.userRepo.On("GetByEmail", ctx, user.Email).Return(&inactive, nil)

		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: password})

		assert.ErrorIs(t, err, auth.ErrUserInactive)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "seller@example.com", Role: string(domain.RoleSeller), IsActive: true}

	t.Run("rotates the session", func(t *testing.T) {
		f := newAuthFixture()
		session := &domain.Session{
			ID:        uuid.New(),
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		f.sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(session, nil)
		f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		f.sessionRepo.On("Revoke", ctx, session.ID).Return(nil)
		f.sessionRepo.On("Create", ctx, mock.Anything).Return(nil)

		tokens, err := f.svc.RefreshToken(ctx, "raw-refresh-token")

		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		f.sessionRepo.AssertCalled(t, "Revoke", ctx, session.ID)
	})

	t.Run("expired session", func(t *testing.T) {
		f := newAuthFixture()
		expired := &domain.Session{
			ID:        uuid.New(),
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		f.sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(expired, nil)

		_, err := f.svc.RefreshToken(ctx, "raw-refresh-token")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("revoked session", func(t *testing.T) {
		f := newAuthFixture()
		now := time.Now()
		revoked := &domain.Session{
			ID:        uuid.New(),
			UserID:    user.ID,
			ExpiresAt: now.Add(time.Hour),
			RevokedAt: &now,
		}
		f.sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(revoked, nil)

		_, err := f.svc.RefreshToken(ctx, "raw-refresh-token")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newAuthFixture()
		f.sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(nil, nil)

		_, err := f.svc.RefreshToken(ctx, "raw-refresh-token")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestValidateAccessToken(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.ValidateAccessToken("not-a-jwt")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
