package service

import (
	"context"
	"errors"
	"strings"

	"jobsite/internal/api/handler/mapper"
	"jobsite/internal/api/handler/request"
	"jobsite/internal/api/handler/response"
	"jobsite/internal/api/models"
	"jobsite/pkg"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// TokenConfig holds the JWT settings used to sign sessions.
type TokenConfig struct {
	Secret            string
	Expiration        int // in minutes
	RefreshExpiration int // in days
}

// UserService is the identity provider: it authenticates users and issues
// the tokens the identity middleware later trusts.
type UserService struct {
	userRepo UserRepository
	guard    *Guard
	tokens   TokenConfig
	logger   zerolog.Logger
}

func NewUserService(userRepo UserRepository, guard *Guard, tokens TokenConfig, logger zerolog.Logger) *UserService {
	return &UserService{userRepo: userRepo, guard: guard, tokens: tokens, logger: logger}
}

var ErrInvalidCredentials = errors.New("invalid email or password")

// Register creates an active user with a bcrypt hashed password.
func (slf *UserService) Register(ctx context.Context, email string, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	exists, err := slf.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error checking if user exists")
		return models.User{}, err
	}
	if exists {
		return models.User{}, errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error hashing password")
		return models.User{}, err
	}

	user := models.User{Email: email, Password: string(hashedPassword), Actif: true}
	if err = slf.userRepo.Create(ctx, &user); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating user")
		return models.User{}, err
	}

	slf.logger.Info().Str("userId", user.ID).Msg("User registered successfully")
	return user, nil
}

func (slf *UserService) Login(ctx context.Context, loginDTO request.LoginDTO) (*response.AuthResponseDTO, error) {
	user, err := slf.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(loginDTO.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		slf.logger.Error().Err(err).Msg("Error finding user by email")
		return nil, err
	}

	if !user.Actif {
		return nil, errors.New("account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginDTO.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	authResponse, err := slf.issueTokens(ctx, &user)
	if err != nil {
		return nil, err
	}

	slf.logger.Info().Str("userId", user.ID).Msg("User logged in successfully")
	return authResponse, nil
}

func (slf *UserService) RefreshToken(ctx context.Context, refreshToken string) (*response.AuthResponseDTO, error) {
	claims, err := pkg.ValidateRefreshToken(refreshToken, slf.tokens.Secret)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Invalid refresh token")
		return nil, errors.New("invalid or expired refresh token")
	}

	user, err := slf.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		slf.logger.Error().Err(err).Str("userId", claims.UserID).Msg("Error finding user by ID")
		return nil, err
	}

	if !user.Actif {
		return nil, errors.New("account is inactive")
	}

	if user.RefreshToken != refreshToken {
		slf.logger.Warn().Str("userId", user.ID).Msg("Refresh token mismatch")
		return nil, errors.New("invalid refresh token")
	}

	authResponse, err := slf.issueTokens(ctx, &user)
	if err != nil {
		return nil, err
	}

	slf.logger.Info().Str("userId", user.ID).Msg("Token refreshed successfully")
	return authResponse, nil
}

// GetMe describes the caller in ctx, including whether it is an admin.
func (slf *UserService) GetMe(ctx context.Context) (response.UserResponseDTO, error) {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return response.UserResponseDTO{}, ErrUnauthorized
	}

	user, err := slf.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.UserResponseDTO{}, ErrNotFound
		}
		slf.logger.Error().Err(err).Str("userId", identity.UserID).Msg("Error finding user by ID")
		return response.UserResponseDTO{}, err
	}

	return mapper.EntityToUserResponse(user, slf.guard.IsAdmin(ctx)), nil
}

func (slf *UserService) issueTokens(ctx context.Context, user *models.User) (*response.AuthResponseDTO, error) {
	token, err := pkg.GenerateToken(user.ID, user.Email, slf.tokens.Secret, slf.tokens.Expiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating token")
		return nil, err
	}

	refreshToken, err := pkg.GenerateRefreshToken(user.ID, slf.tokens.Secret, slf.tokens.RefreshExpiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating refresh token")
		return nil, err
	}

	user.RefreshToken = refreshToken
	if err = slf.userRepo.Update(ctx, user); err != nil {
		slf.logger.Error().Err(err).Msg("Error updating user with refresh token")
		return nil, err
	}

	isAdmin := slf.guard.IsAdmin(WithIdentity(ctx, Identity{UserID: user.ID, Email: user.Email}))
	return &response.AuthResponseDTO{
		Token:        token,
		RefreshToken: refreshToken,
		User:         mapper.EntityToUserResponse(*user, isAdmin),
	}, nil
}
