// Package config handles configuration management for fastidious.
// It supports loading configuration from multiple sources including
// TOML files, environment variables, and command-line flags, and resolves
// scriptlet names to check and apply scripts.
package config
