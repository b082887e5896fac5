package dto

// TokenRequest body para POST /api/auth/token: emite un token para un usuario y rol
// si la llave de administración es correcta.
type TokenRequest struct {
	AdminKey string `json:"admin_key"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
}

// TokenResponse token emitido.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
