package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func createPersistence(t *testing.T) (Persistence, string) {
	dbPath := filepath.Join(t.TempDir(), "db", "heat2go.db")
	p := NewPersistence(dbPath)
	require.NoError(t, p.Init())
	return p, dbPath
}

func TestPersistence_Init_CreatesDirectory(t *testing.T) {
	// GIVEN
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "heat2go.db")
	p := NewPersistence(dbPath)

	// WHEN
	err := p.Init()

	// THEN
	assert.NoError(t, err)
	assert.DirExists(t, filepath.Dir(dbPath))
}

func TestPersistence_SaveAndLoadControllerState(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)
	expected := ControllerState{
		Kp:       60,
		Ki:       4,
		Kd:       8,
		SetPoint: 35.5,
		SavedAt:  time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC),
	}

	// WHEN
	err := p.SaveControllerState("heater", expected)
	require.NoError(t, err)
	state, err := p.LoadControllerState("heater")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, expected.Kp, state.Kp)
	assert.Equal(t, expected.Ki, state.Ki)
	assert.Equal(t, expected.Kd, state.Kd)
	assert.Equal(t, expected.SetPoint, state.SetPoint)
	assert.True(t, expected.SavedAt.Equal(state.SavedAt))
}

func TestPersistence_LoadControllerState_NotFound(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)

	// WHEN
	_, err := p.LoadControllerState("heater")

	// THEN
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersistence_LoadControllerState_CorruptDataIsDeleted(t *testing.T) {
	// GIVEN
	p, dbPath := createPersistence(t)
	db, err := bolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketControllerState))
		if err != nil {
			return err
		}
		return b.Put([]byte("heater"), []byte("{not json"))
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// WHEN
	_, err = p.LoadControllerState("heater")

	// THEN
	assert.ErrorIs(t, err, ErrNotFound)
	states, err := p.ListControllerStates()
	assert.NoError(t, err)
	assert.Empty(t, states)
}

func TestPersistence_DeleteControllerState(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)
	require.NoError(t, p.SaveControllerState("heater", ControllerState{Kp: 1}))

	// WHEN
	err := p.DeleteControllerState("heater")

	// THEN
	assert.NoError(t, err)
	_, err = p.LoadControllerState("heater")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersistence_DeleteControllerState_EmptyDb(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)

	// WHEN
	err := p.DeleteControllerState("heater")

	// THEN
	assert.NoError(t, err)
}

func TestPersistence_ListControllerStates(t *testing.T) {
	// GIVEN
	p, _ := createPersistence(t)
	require.NoError(t, p.SaveControllerState("heater", ControllerState{Kp: 1, SetPoint: 20}))
	require.NoError(t, p.SaveControllerState("oven", ControllerState{Kp: 2, SetPoint: 40}))

	// WHEN
	states, err := p.ListControllerStates()

	// THEN
	assert.NoError(t, err)
	assert.Len(t, states, 2)
	assert.Equal(t, 40.0, states["oven"].SetPoint)
	assert.Equal(t, 1.0, states["heater"].Kp)
}
