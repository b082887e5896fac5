package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/pkg/config"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

func TestOpen_Memoria(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Name: "atelier", StorageDriver: config.StorageMemory}}
	svc, closeFn, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer closeFn()

	m, err := svc.Catalog.CreateMaterial(context.Background(), dto.CreateMaterialRequest{Name: "Tela", Unit: "m"})
	require.NoError(t, err)
	got, err := svc.Catalog.GetMaterial(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tela", got.Name)
	assert.NotNil(t, svc.Metrics.Handler())
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{StorageDriver: "mongo"}}
	_, _, err := Open(context.Background(), cfg, logger.Nop())
	require.Error(t, err)
}
