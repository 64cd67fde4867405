package endpoints

import (
	"errors"
	"net/http"

	"jobsite/internal/api/handler/response"
	"jobsite/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// writeActionError answers a failed admin mutation. Expected failures become
// {"error": message}; authorization failures are reported separately.
func writeActionError(c *gin.Context, logger zerolog.Logger, err error) {
	var validationErr *service.ValidationError
	var upstreamErr *service.UpstreamError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		logger.Warn().Str("path", c.FullPath()).Msg("Rejected unauthorized mutation")
		c.JSON(http.StatusForbidden, response.APIError{Message: "Unauthorized"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ActionResult{Error: "Not found"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, response.ActionResult{Error: validationErr.Message})
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusBadGateway, response.ActionResult{Error: upstreamErr.Error()})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unexpected error")
		c.JSON(http.StatusInternalServerError, response.ActionResult{Error: err.Error()})
	}
}
