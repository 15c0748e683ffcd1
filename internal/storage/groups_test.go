package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tareas/internal/common"
)

func TestTaskGroups(t *testing.T) {
	store, folders := createTestStorageWithFolders(t, "Trabajo", "Casa")
	ctx := context.Background()

	first, err := store.CreateTaskGroup(ctx, folders[0].ID, " Compras ")
	require.NoError(t, err)
	assert.Equal(t, "Compras", first.Name)
	assert.Equal(t, 0, first.Order)

	second, err := store.CreateTaskGroup(ctx, folders[0].ID, "Llamadas")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)

	_, err = store.CreateTaskGroup(ctx, folders[1].ID, "Jardín")
	require.NoError(t, err)

	groups, err := store.ListTaskGroups(ctx, folders[0].ID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Compras", groups[0].Name)
	assert.Equal(t, "Llamadas", groups[1].Name)
	assert.False(t, groups[0].Collapsed)
}

func TestCreateTaskGroup_Errors(t *testing.T) {
	store, folders := createTestStorageWithFolders(t, "Trabajo")
	ctx := context.Background()

	_, err := store.CreateTaskGroup(ctx, folders[0].ID, "")
	assert.ErrorIs(t, err, ErrEmptyString)

	_, err = store.CreateTaskGroup(ctx, "missing", "Compras")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
