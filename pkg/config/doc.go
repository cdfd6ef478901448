// Package config handles configuration management for runtimeup.
// It supports loading configuration from multiple sources including
// the embedded defaults, a TOML or YAML user file, environment variables
// and command-line flags. The loaded Config is immutable and is converted
// into the runtime and extension specs consumed by the provisioning pipeline.
package config
