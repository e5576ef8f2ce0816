package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devis-renovation-api/pkg/config"
)

func TestNewPoolConfig_DesdeCampos(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db", Port: 5433, User: "artisan", Password: "p@ss", DBName: "devis", SSLMode: "disable",
		MaxConns: 8, MinConns: 2,
	}

	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
	assert.Equal(t, "devis", pc.ConnConfig.Database)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
	assert.NotNil(t, pc.AfterConnect)
}

func TestNewPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://u:p@remote:5432/prod?sslmode=disable",
		Host:        "localhost", Port: 5432,
	}

	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "remote", pc.ConnConfig.Host)
	assert.Equal(t, "prod", pc.ConnConfig.Database)
}

func TestNewPoolConfig_DSNInvalido(t *testing.T) {
	_, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}
