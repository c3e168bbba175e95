// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// The same file serves both binaries: cmd/panel reads device, bridge and panel;
// cmd/device reads simulator.
package config
