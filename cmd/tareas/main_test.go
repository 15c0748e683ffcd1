package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/storage"
)

// setupCLI points the commands at a fresh database and forces offline mode.
func setupCLI(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("ANTHROPIC_API_KEY", "")

	dbPath := filepath.Join(t.TempDir(), "tareas.db")
	viper.Set("database.path", dbPath)
	viper.Set("connectivity.force", "offline")
	return dbPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	setupCLI(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tareas dev")
}

func TestSetupLogging_InvalidLevel(t *testing.T) {
	setupCLI(t)
	viper.Set("logging.level", "loud")
	assert.ErrorIs(t, setupLogging(), common.ErrInvalidConfig)
}

func TestFolders(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "folders", "add", "Trabajo", "--context", "oficina", "--keywords", "informe,reunión")
	require.NoError(t, err)
	_, err = run(t, "folders", "add", "Casa")
	require.NoError(t, err)

	_, err = run(t, "folders", "add", "casa")
	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	out, err := run(t, "folders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Trabajo")
	assert.Contains(t, out, "oficina")
	assert.Contains(t, out, "informe, reunión")
	assert.Less(t, strings.Index(out, "Trabajo"), strings.Index(out, "Casa"))

	_, err = run(t, "folders", "reorder", "Casa", "Trabajo")
	require.NoError(t, err)
	out, err = run(t, "folders", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Casa"), strings.Index(out, "Trabajo"))

	_, err = run(t, "folders", "reorder", "Nada")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAdd_OfflineQueues(t *testing.T) {
	dbPath := setupCLI(t)

	_, err := run(t, "add", "regar las plantas")
	assert.ErrorIs(t, err, common.ErrNoCategories)

	_, err = run(t, "folders", "add", "Casa")
	require.NoError(t, err)

	out, err := run(t, "add", "Comprar", "leche", ">", "Compras", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Comprar leche")
	assert.Contains(t, out, "Casa / Compras")
	assert.Contains(t, out, "sin conexión")

	out, err = run(t, "queue", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Comprar leche > Compras high")

	out, err = run(t, "queue", "drain")
	require.NoError(t, err)
	assert.Contains(t, out, "Sin conexión")

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer store.Close()
	pending, err := store.ListPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestTasksList(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "folders", "add", "Antai")
	require.NoError(t, err)
	_, err = run(t, "add", "Revisar docs de Antai con Marta")
	require.NoError(t, err)
	_, err = run(t, "add", "Fregar")
	require.NoError(t, err)

	out, err := run(t, "tasks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Antai (2)")
	assert.Contains(t, out, "Fregar")

	out, err = run(t, "tasks", "list", "--paths")
	require.NoError(t, err)
	assert.Contains(t, out, "Sin asignar (1)")
	assert.Contains(t, out, "Antai / Documentación")
}

func TestParse(t *testing.T) {
	setupCLI(t)
	out, err := run(t, "parse", "Llamar", "a", "Marta", ">", "Personal", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Llamar a Marta")
	assert.Contains(t, out, "grupo: Personal")
	assert.Contains(t, out, "prioridad: high")
	assert.Contains(t, out, "Marta")
}
