// Package file loads the importer configuration from a TOML file,
// by default ~/.histograph/config.toml.
package file
