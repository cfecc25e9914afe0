package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"billdesk/internal/config"
	"billdesk/internal/domain"
	"billdesk/internal/service"
	"billdesk/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "billdesk-test",
	}
}

func TestAuthService_Register_DefaultsToUserRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	result, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "Asha",
		Email:    "asha@test.com",
		Password: "securepassword",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleUser, result.User.Role)
	assert.True(t, result.User.IsActive)
	assert.NotEmpty(t, result.User.RegistrationNumber)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_FirstAdminSucceeds(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("CountAdmins", mock.Anything).Return(0, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	result, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "Root",
		Email:    "root@test.com",
		Password: "securepassword",
		Role:     domain.RoleAdmin,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, result.User.Role)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_SecondAdminRejected(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("CountAdmins", mock.Anything).Return(1, nil)

	result, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "Pretender",
		Email:    "second@test.com",
		Password: "securepassword",
		Role:     domain.RoleAdmin,
	})

	assert.ErrorIs(t, err, domain.ErrAdminExists)
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "X",
		Email:    "x@test.com",
		Password: "securepassword",
		Role:     "superuser",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("securepassword"), bcrypt.MinCost)
	user := &domain.User{
		ID:           uuid.New(),
		Email:        "asha@test.com",
		PasswordHash: string(hash),
		Role:         domain.RoleOperationsManager,
		IsActive:     true,
	}
	repo.On("GetByEmail", mock.Anything, "asha@test.com").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "asha@test.com",
		Password: "securepassword",
	})

	assert.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Tokens.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	repo.On("GetByEmail", mock.Anything, "asha@test.com").Return(&domain.User{
		ID:           uuid.New(),
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "asha@test.com",
		Password: "wrongpassword",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("GetByEmail", mock.Anything, "nobody@test.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@test.com",
		Password: "securepassword",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("GetByEmail", mock.Anything, "off@test.com").Return(&domain.User{
		ID:       uuid.New(),
		IsActive: false,
	}, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "off@test.com",
		Password: "securepassword",
	})

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_ValidateToken_RoundTrip(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	result, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "Asha",
		Email:    "asha@test.com",
		Password: "securepassword",
	})
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(result.Tokens.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "asha@test.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestAuthService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	result, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "Asha",
		Email:    "asha@test.com",
		Password: "securepassword",
	})
	assert.NoError(t, err)

	// A refresh token must not pass access-token validation.
	_, err = svc.ValidateToken(result.Tokens.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_RefreshToken_IssuesNewPair(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	result, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "Asha",
		Email:    "asha@test.com",
		Password: "securepassword",
	})
	assert.NoError(t, err)

	repo.On("GetByID", mock.Anything, result.User.ID).Return(result.User, nil)

	pair, err := svc.RefreshToken(context.Background(), result.Tokens.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestAuthService_AdminExists(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("CountAdmins", mock.Anything).Return(1, nil)

	exists, err := svc.AdminExists(context.Background())
	assert.NoError(t, err)
	assert.True(t, exists)
}
