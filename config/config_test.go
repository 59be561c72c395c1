package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProgression(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Progression.IsSpecial(2))
	assert.True(t, cfg.Progression.IsSpecial(3))
	assert.False(t, cfg.Progression.IsSpecial(1))

	level, ok := cfg.Progression.LevelFor(2)
	require.True(t, ok)
	assert.Equal(t, 2, level)

	_, ok = cfg.Progression.LevelFor(1)
	assert.False(t, ok)

	assert.Equal(t, "LULUS_KEGIATAN", cfg.Progression.GraduatedStatus)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[web]
port = 9000

[db]
host = "db.internal"
port = 5432
user = "svc"
password = "secret"
database = "backoffice"

[progression]
special_types = [4]
graduated_status = "SELESAI"

[progression.level_map]
"4" = 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Web.Port)
	assert.Equal(t, "0.0.0.0", cfg.Web.Host, "unset fields keep defaults")
	assert.Equal(t, "db.internal", cfg.DB.Host)

	assert.True(t, cfg.Progression.IsSpecial(4))
	assert.False(t, cfg.Progression.IsSpecial(2))
	level, ok := cfg.Progression.LevelFor(4)
	require.True(t, ok)
	assert.Equal(t, 5, level)
	assert.Equal(t, "SELESAI", cfg.Progression.GraduatedStatus)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
