package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"jobsite/internal/api/handler/request"
	"jobsite/internal/api/models"
	"jobsite/internal/api/repo"
	"jobsite/pkg"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	db := setupTestDB(t)
	guard := NewGuard(repo.NewProfileRepository(db), zerolog.Nop())
	service := NewUserService(repo.NewUserRepository(db), guard, TokenConfig{
		Secret:            testSecret,
		Expiration:        60,
		RefreshExpiration: 30,
	}, zerolog.Nop())
	return service, db
}

func uniqueEmail() string {
	return fmt.Sprintf("test-%d@example.com", time.Now().UnixNano())
}

func TestUser_Register(t *testing.T) {
	service, _ := newUserService(t)
	email := uniqueEmail()

	user, err := service.Register(context.Background(), "  "+email+" ", "testpassword123")
	require.NoError(t, err, "Failed to register user")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, email, user.Email)
	assert.True(t, user.Actif)
	assert.NotEqual(t, "testpassword123", user.Password)
}

func TestUser_Register_DuplicateEmail(t *testing.T) {
	service, _ := newUserService(t)
	email := uniqueEmail()

	_, err := service.Register(context.Background(), email, "testpassword123")
	require.NoError(t, err)

	_, err = service.Register(context.Background(), email, "otherpassword456")
	assert.Error(t, err)
}

func TestUser_Login(t *testing.T) {
	service, db := newUserService(t)
	email := uniqueEmail()

	user, err := service.Register(context.Background(), email, "testpassword123")
	require.NoError(t, err)

	result, err := service.Login(context.Background(), request.LoginDTO{Email: email, Password: "testpassword123"})
	require.NoError(t, err, "Failed to login")
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, user.ID, result.User.ID)
	assert.False(t, result.User.IsAdmin)

	claims, err := pkg.ValidateToken(result.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	require.NoError(t, repo.NewProfileRepository(db).SetAdmin(context.Background(), user.ID, true))
	result, err = service.Login(context.Background(), request.LoginDTO{Email: email, Password: "testpassword123"})
	require.NoError(t, err)
	assert.True(t, result.User.IsAdmin)
}

func TestUser_Login_WrongPassword(t *testing.T) {
	service, _ := newUserService(t)
	email := uniqueEmail()

	_, err := service.Register(context.Background(), email, "testpassword123")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), request.LoginDTO{Email: email, Password: "wrongpassword"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUser_Login_WrongEmail(t *testing.T) {
	service, _ := newUserService(t)

	_, err := service.Login(context.Background(), request.LoginDTO{Email: uniqueEmail(), Password: "testpassword123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUser_Login_InactiveAccount(t *testing.T) {
	service, db := newUserService(t)
	email := uniqueEmail()

	user, err := service.Register(context.Background(), email, "testpassword123")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("actif", false).Error)

	_, err = service.Login(context.Background(), request.LoginDTO{Email: email, Password: "testpassword123"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "inactive")
}

func TestUser_RefreshToken(t *testing.T) {
	service, _ := newUserService(t)
	email := uniqueEmail()

	_, err := service.Register(context.Background(), email, "testpassword123")
	require.NoError(t, err)
	login, err := service.Login(context.Background(), request.LoginDTO{Email: email, Password: "testpassword123"})
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err, "Failed to refresh token")
	assert.NotEmpty(t, refreshed.Token)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, err = service.RefreshToken(context.Background(), login.RefreshToken)
	assert.Error(t, err, "a rotated refresh token is no longer accepted")
}

func TestUser_RefreshToken_Invalid(t *testing.T) {
	service, _ := newUserService(t)

	_, err := service.RefreshToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestUser_RefreshToken_RejectsAccessToken(t *testing.T) {
	service, _ := newUserService(t)
	email := uniqueEmail()

	_, err := service.Register(context.Background(), email, "testpassword123")
	require.NoError(t, err)
	login, err := service.Login(context.Background(), request.LoginDTO{Email: email, Password: "testpassword123"})
	require.NoError(t, err)

	_, err = service.RefreshToken(context.Background(), login.Token)
	assert.Error(t, err)
}

func TestUser_GetMe(t *testing.T) {
	service, _ := newUserService(t)

	_, err := service.GetMe(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	user, err := service.Register(context.Background(), uniqueEmail(), "testpassword123")
	require.NoError(t, err)

	me, err := service.GetMe(WithIdentity(context.Background(), Identity{UserID: user.ID, Email: user.Email}))
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)
	assert.False(t, me.IsAdmin)

	_, err = service.GetMe(WithIdentity(context.Background(), Identity{UserID: "missing"}))
	assert.ErrorIs(t, err, ErrNotFound)
}
