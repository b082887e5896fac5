package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Atelier-api/pkg/config"
)

func TestNewPoolConfig(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: 5433, User: "atelier", Password: "secreto", DBName: "atelier", SSLMode: "disable"}

	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "UTC", pc.ConnConfig.RuntimeParams["timezone"])
	assert.Equal(t, "atelier-api", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, int32(10), pc.MaxConns)
	assert.NotNil(t, pc.AfterConnect)
}

func TestNewPoolConfig_ApplicationNameDeLaURL(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://u:p@localhost:5432/atelier?application_name=worker"}

	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "worker", pc.ConnConfig.RuntimeParams["application_name"])
}

func TestNewPoolConfig_DSNInvalido(t *testing.T) {
	_, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@localhost:notaport/db"})
	require.Error(t, err)
}
