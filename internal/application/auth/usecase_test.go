package auth

import (
	"testing"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUseCase(t *testing.T) *AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("llave-admin"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthUseCase(string(hash), JWTConfig{Secret: "secreto", ExpMinutes: 10, Issuer: "test"})
}

func TestIssueToken_LlaveCorrecta(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.IssueToken(dto.TokenRequest{AdminKey: "llave-admin", UserID: "ana", Role: "planificador"})
	require.NoError(t, err)
	assert.Equal(t, 600, resp.ExpiresIn)

	userID, role, err := jwt.Parse("secreto", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana", userID)
	assert.Equal(t, "planificador", role)
}

func TestIssueToken_LlaveIncorrecta(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.IssueToken(dto.TokenRequest{AdminKey: "otra", UserID: "ana", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestIssueToken_RolInvalido(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.IssueToken(dto.TokenRequest{AdminKey: "llave-admin", UserID: "ana", Role: "vendedor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIssueToken_SinHashConfigurado(t *testing.T) {
	uc := NewAuthUseCase("", JWTConfig{Secret: "secreto", ExpMinutes: 10})

	_, err := uc.IssueToken(dto.TokenRequest{AdminKey: "x", UserID: "ana", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
