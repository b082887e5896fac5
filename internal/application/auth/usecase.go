package auth

import (
	"strings"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase emite tokens de acceso. No hay tabla de usuarios: quien conoce la llave de
// administración (verificada contra su hash bcrypt) puede emitir un token para un usuario y rol.
type AuthUseCase struct {
	adminKeyHash string
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(adminKeyHash string, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{adminKeyHash: adminKeyHash, jwtCfg: jwtCfg}
}

// IssueToken verifica la llave con bcrypt y genera el JWT.
func (uc *AuthUseCase) IssueToken(in dto.TokenRequest) (*dto.TokenResponse, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" || !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	if uc.adminKeyHash == "" || in.AdminKey == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.adminKeyHash), []byte(in.AdminKey)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, userID, in.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
