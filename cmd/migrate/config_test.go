package main

import (
	"os"
	"path/filepath"
	"testing"

	"gametracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsDir_EnvOverride(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "/custom/migrations")

	assert.Equal(t, "/custom/migrations", migrationsDir())
}

func TestMigrationsDir_Default(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "")

	assert.Equal(t, "db/migrations", migrationsDir())
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\n"), 0644))

	t.Setenv("DB_DSN", "from_env")
	t.Chdir(tmp)

	config.LoadEnvFiles()

	assert.Equal(t, "from_env", databaseDSN())
}

func TestRun_Create_RequiresName(t *testing.T) {
	assert.ErrorIs(t, run("create", ""), errNameRequired)
}
