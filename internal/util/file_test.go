package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadIntFromFile(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "value")

	// WHEN
	err := WriteIntToFile(1234, filePath)
	assert.NoError(t, err)
	value, err := ReadIntFromFile(filePath)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1234, value)
}

func TestReadIntFromFile_TrimsWhitespace(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "value")
	err := os.WriteFile(filePath, []byte("  4095\n"), 0644)
	assert.NoError(t, err)

	// WHEN
	value, err := ReadIntFromFile(filePath)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 4095, value)
}

func TestReadIntFromFile_Empty(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "value")
	err := os.WriteFile(filePath, []byte(""), 0644)
	assert.NoError(t, err)

	// WHEN
	value, err := ReadIntFromFile(filePath)

	// THEN
	assert.Error(t, err)
	assert.Equal(t, -1, value)
}

func TestReadIntFromFile_Missing(t *testing.T) {
	// WHEN
	_, err := ReadIntFromFile(filepath.Join(t.TempDir(), "missing"))

	// THEN
	assert.Error(t, err)
}

func TestWriteIntToFileAtomic(t *testing.T) {
	// GIVEN
	filePath := filepath.Join(t.TempDir(), "value")

	// WHEN
	err := WriteIntToFileAtomic(77, filePath)

	// THEN
	assert.NoError(t, err)
	value, err := ReadIntFromFile(filePath)
	assert.NoError(t, err)
	assert.Equal(t, 77, value)
}

func TestExpandHomeDir_NoTilde(t *testing.T) {
	// WHEN
	result, err := ExpandHomeDir("/dev/ttyUSB0")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", result)
}

func TestExpandHomeDir_Tilde(t *testing.T) {
	// GIVEN
	home, err := homedir.Dir()
	require.NoError(t, err)

	// WHEN
	result, err := ExpandHomeDir("~/heat2go/adc_raw")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "heat2go", "adc_raw"), result)
}

func TestExpandHomeDir_OtherUser(t *testing.T) {
	// WHEN
	_, err := ExpandHomeDir("~root/adc_raw")

	// THEN
	assert.Error(t, err)
}
