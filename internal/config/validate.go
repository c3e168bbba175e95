package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Device.Host == "" {
		return errors.New("device.host is required")
	}
	if strings.Contains(c.Device.Host, "/") {
		return fmt.Errorf("device.host must be a host or host:port, got %q", c.Device.Host)
	}

	if c.Bridge.HandshakeTimeout <= 0 {
		return errors.New("bridge.handshake_timeout must be > 0")
	}
	if c.Bridge.WriteTimeout <= 0 {
		return errors.New("bridge.write_timeout must be > 0")
	}
	if c.Bridge.PingInterval <= 0 {
		return errors.New("bridge.ping_interval must be > 0")
	}
	if c.Bridge.PingTimeout < c.Bridge.PingInterval {
		return fmt.Errorf("bridge.ping_timeout (%s) cannot be shorter than ping_interval (%s)",
			c.Bridge.PingTimeout, c.Bridge.PingInterval)
	}
	if c.Bridge.BufferSize < 1 {
		return errors.New("bridge.buffer_size must be >= 1")
	}

	if c.Panel.Listen == "" {
		return errors.New("panel.listen is required")
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

// ValidateSimulator checks the settings the device simulator needs. The
// simulator does not dial the device, so device.host is not required.
func (c *Config) ValidateSimulator() error {
	if c.Simulator.Listen == "" {
		return errors.New("simulator.listen is required")
	}
	if c.Simulator.UDPListen == "" {
		return errors.New("simulator.udp_listen is required")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level must be debug, info, warn or error, got %q", l.Level)
}
