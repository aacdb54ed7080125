package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/histograph/importer/internal/core/domain"
)

// fileConfig is the TOML shape of the configuration file. It is mapped
// onto domain.Config so the domain stays free of TOML tags.
type fileConfig struct {
	Import struct {
		Dirs []string `toml:"dirs"`
	} `toml:"import"`
	API struct {
		BaseURL        string  `toml:"baseurl"`
		Admin          string  `toml:"admin"`
		Password       string  `toml:"password"`
		TimeoutSeconds int     `toml:"timeout_seconds"`
		RateLimit      float64 `toml:"rate_limit"`
	} `toml:"api"`
}

// DefaultPath returns the default configuration file location,
// ~/.histograph/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".histograph", "config.toml"), nil
}

// Load reads and parses the configuration file at path. An empty path
// falls back to DefaultPath. The result is not validated; callers run
// Config.Validate once flags have been merged in.
func Load(path string) (*domain.Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &domain.Config{
		Import: domain.ImportConfig{
			Dirs: fc.Import.Dirs,
		},
		API: domain.APIConfig{
			BaseURL:        fc.API.BaseURL,
			Admin:          fc.API.Admin,
			Password:       fc.API.Password,
			TimeoutSeconds: fc.API.TimeoutSeconds,
			RateLimit:      fc.API.RateLimit,
		},
	}, nil
}
