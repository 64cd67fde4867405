package mapper

import (
	"jobsite/internal/api/handler/response"
	"jobsite/internal/api/models"
)

func EntityToUserResponse(user models.User, isAdmin bool) response.UserResponseDTO {
	return response.UserResponseDTO{
		ID:      user.ID,
		Email:   user.Email,
		Actif:   user.Actif,
		IsAdmin: isAdmin,
	}
}
