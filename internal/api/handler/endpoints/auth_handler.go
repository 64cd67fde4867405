package endpoints

import (
	"errors"
	"net/http"

	"jobsite/internal/api/handler/middleware"
	"jobsite/internal/api/handler/request"
	"jobsite/internal/api/handler/response"
	"jobsite/internal/api/service"
	"jobsite/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type authHandler struct {
	userService *service.UserService
	logger      zerolog.Logger
}

func AuthHandler(router gin.IRouter, userService *service.UserService, jwtSecret string, logger zerolog.Logger) {
	h := &authHandler{userService: userService, logger: logger}

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refreshToken)
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.Identity(jwtSecret))
	protected.Use(middleware.RequireIdentity())
	{
		protected.GET("/me", h.getMe)
	}
}

func (slf *authHandler) login(c *gin.Context) {
	var loginDTO request.LoginDTO
	err := pkg.ParseAndValidate(c, &loginDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating login DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: pkg.ValidationMessage(err)})
		return
	}

	authResponse, err := slf.userService.Login(c.Request.Context(), loginDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error logging in user")
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, authResponse)
}

func (slf *authHandler) refreshToken(c *gin.Context) {
	var refreshDTO request.RefreshTokenDTO
	err := pkg.ParseAndValidate(c, &refreshDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating refresh token DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: pkg.ValidationMessage(err)})
		return
	}

	authResponse, err := slf.userService.RefreshToken(c.Request.Context(), refreshDTO.RefreshToken)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error refreshing token")
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, authResponse)
}

func (slf *authHandler) getMe(c *gin.Context) {
	user, err := slf.userService.GetMe(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, response.APIError{Message: "User not authenticated"})
			return
		}
		slf.logger.Error().Err(err).Msg("Error getting user")
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
