package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("parses a full config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[import]
dirs = ["/data/import", "/data/more"]

[api]
baseurl = "http://localhost:3000"
admin = "histograph"
password = "secret"
timeout_seconds = 60
rate_limit = 2.5
`), 0o600))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"/data/import", "/data/more"}, cfg.Import.Dirs)
		assert.Equal(t, "http://localhost:3000", cfg.API.BaseURL)
		assert.Equal(t, "histograph", cfg.API.Admin)
		assert.Equal(t, "secret", cfg.API.Password)
		assert.Equal(t, 60, cfg.API.TimeoutSeconds)
		assert.InDelta(t, 2.5, cfg.API.RateLimit, 0.0001)
	})

	t.Run("omitted keys default to zero values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[import]
dirs = ["/data/import"]

[api]
baseurl = "http://localhost:3000"
admin = "histograph"
`), 0o600))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Empty(t, cfg.API.Password)
		assert.Zero(t, cfg.API.TimeoutSeconds)
		assert.Zero(t, cfg.API.RateLimit)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("malformed TOML is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".histograph", "config.toml"),
		filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
