package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDBCreatesSessionsTable(t *testing.T) {
	db, err := OpenDB(context.Background(), "sqlite", "file::memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`REPLACE INTO sessions (id, token, updated_at) VALUES (?, ?, ?)`, "abc", "tok", time.Now().UTC())
	require.NoError(t, err)

	var token string
	require.NoError(t, db.Get(&token, `SELECT token FROM sessions WHERE id = ?`, "abc"))
	assert.Equal(t, "tok", token)
}

func TestOpenDBUnknownDriver(t *testing.T) {
	_, err := OpenDB(context.Background(), "nope", "")
	assert.Error(t, err)
}
