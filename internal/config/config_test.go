package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdf2db/pdf2db/pkg/pdf2db"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `connection: postgresql://u@h:5432/db
target_table: restructured_loans
preview_rows: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yaml), 0o644))

	cfg, err := LoadFile(dir)
	require.NoError(t, err)
	assert.Equal(t, "postgresql://u@h:5432/db", cfg.Connection)
	assert.Equal(t, "restructured_loans", cfg.TargetTable)
	assert.Equal(t, 5, cfg.PreviewRows)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(t.TempDir())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadFileMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("::: not yaml"), 0o644))

	_, err := LoadFile(dir)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigNotFound)
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv(pdf2db.EnvDatabaseURL, "postgresql://env@h/db")
	t.Setenv(pdf2db.EnvTargetTable, "")

	cfg, err := Resolve("", "", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "postgresql://env@h/db", cfg.ConnectionString)
	assert.Equal(t, pdf2db.DefaultTargetTable, cfg.TargetTable)
	assert.Equal(t, pdf2db.DefaultPreviewRows, cfg.PreviewRows)
}

func TestResolvePrecedence(t *testing.T) {
	t.Setenv(pdf2db.EnvDatabaseURL, "postgresql://env@h/db")
	t.Setenv(pdf2db.EnvTargetTable, "env_table")

	file := &FileConfig{
		Connection:  "postgresql://file@h/db",
		TargetTable: "file_table",
		PreviewRows: 3,
	}

	// Env beats file.
	cfg, err := Resolve("", "", 0, file)
	require.NoError(t, err)
	assert.Equal(t, "postgresql://env@h/db", cfg.ConnectionString)
	assert.Equal(t, "env_table", cfg.TargetTable)
	assert.Equal(t, 3, cfg.PreviewRows)

	// Flags beat env.
	cfg, err = Resolve("postgresql://flag@h/db", "flag_table", 7, file)
	require.NoError(t, err)
	assert.Equal(t, "postgresql://flag@h/db", cfg.ConnectionString)
	assert.Equal(t, "flag_table", cfg.TargetTable)
	assert.Equal(t, 7, cfg.PreviewRows)
}

func TestResolveFileOnly(t *testing.T) {
	t.Setenv(pdf2db.EnvDatabaseURL, "")
	t.Setenv(pdf2db.EnvTargetTable, "")

	cfg, err := Resolve("", "", 0, &FileConfig{Connection: "postgresql://file@h/db"})
	require.NoError(t, err)
	assert.Equal(t, "postgresql://file@h/db", cfg.ConnectionString)
}

func TestResolveMissingConnection(t *testing.T) {
	t.Setenv(pdf2db.EnvDatabaseURL, "")

	_, err := Resolve("", "", 0, nil)
	assert.ErrorIs(t, err, pdf2db.ErrInvalidConfig)
}
