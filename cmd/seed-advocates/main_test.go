package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perbu/advomatch/pkg/advocate"
	"github.com/perbu/advomatch/pkg/source"
)

func TestSeed(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "advocates.db")

	path, err := seed(context.Background(), dbPath, advocate.Fallback())
	require.NoError(t, err)
	assert.Equal(t, dbPath, path)

	store, err := source.OpenSQLite(dbPath)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.ListAdvocates(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, len(advocate.Fallback()))
}

func TestSeed_UnopenableStore(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := seed(context.Background(), filepath.Join(blocker, "advocates.db"), advocate.Fallback())
	assert.Error(t, err)
}

func TestSeed_FailedInsertClosesStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "advocates.db")
	dup := advocate.Fallback()[:2]
	dup[1].ID = dup[0].ID

	_, err := seed(context.Background(), dbPath, dup)
	require.Error(t, err)

	// The store was closed and the transaction rolled back, so it reopens empty.
	store, err := source.OpenSQLite(dbPath)
	require.NoError(t, err)
	defer store.Close()
	got, err := store.ListAdvocates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
