package domain

// Config holds the importer's startup configuration: the ordered list of
// import roots, the registry endpoint and the admin credentials used for
// basic authentication. It is loaded once and passed in explicitly;
// there is no process-global configuration.
type Config struct {
	// Import configures where datasets are discovered.
	Import ImportConfig

	// API configures the remote registry.
	API APIConfig
}

// ImportConfig names the directories scanned for datasets.
type ImportConfig struct {
	// Dirs is the ordered list of import root directories. Datasets are
	// discovered in each root in turn; a dataset name present in two
	// roots is processed twice, in scan order.
	Dirs []string
}

// APIConfig describes the registry endpoint.
type APIConfig struct {
	// BaseURL is the registry API base URL, e.g. "http://localhost:3000".
	BaseURL string

	// Admin is the administrator account name for basic auth.
	Admin string

	// Password is the administrator password for basic auth.
	Password string

	// TimeoutSeconds bounds each HTTP request. Zero means the transport
	// default (no client timeout).
	TimeoutSeconds int

	// RateLimit throttles registry requests to this many per second.
	// Zero disables throttling.
	RateLimit float64
}

// Validate checks that the configuration is complete enough to run.
func (c *Config) Validate() error {
	if len(c.Import.Dirs) == 0 {
		return ErrNoImportDirs
	}
	if c.API.BaseURL == "" {
		return ErrNoBaseURL
	}
	if c.API.Admin == "" {
		return ErrNoCredentials
	}
	return nil
}
