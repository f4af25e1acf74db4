// Package config loads and validates cuemill configuration.
//
// Configuration is TOML. Load resolves the file (explicit path, then
// ~/.config/cuemill/config.toml, then ./cuemill.toml), decodes it over the
// defaults, expands paths, and validates the result. A missing file is not
// an error: defaults apply.
package config
