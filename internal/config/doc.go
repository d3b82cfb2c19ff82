// Package config manages user-level settings stored at ~/.aip/config.yaml.
// It resolves the registry URL, API key, and retry tuning from the config
// file with AIP_-prefixed environment variables taking precedence, and
// rejects writes to keys outside the known set.
package config
