package response

type UserResponseDTO struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Actif   bool   `json:"actif"`
	IsAdmin bool   `json:"isAdmin"`
}

type AuthResponseDTO struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	User         UserResponseDTO `json:"user"`
}
