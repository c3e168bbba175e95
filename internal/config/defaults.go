package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultWriteTimeout     = 5 * time.Second
	DefaultPingInterval     = 30 * time.Second
	DefaultPingTimeout      = 60 * time.Second
	DefaultBufferSize       = 64
	DefaultPanelListen      = ":8080"
	DefaultSimulatorListen  = ":80"
	DefaultUDPListen        = ":1234"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
)

func (c *Config) applyDefaults() {
	// Bridge defaults
	if c.Bridge.HandshakeTimeout == 0 {
		c.Bridge.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Bridge.WriteTimeout == 0 {
		c.Bridge.WriteTimeout = DefaultWriteTimeout
	}
	if c.Bridge.PingInterval == 0 {
		c.Bridge.PingInterval = DefaultPingInterval
	}
	if c.Bridge.PingTimeout == 0 {
		c.Bridge.PingTimeout = DefaultPingTimeout
	}
	if c.Bridge.BufferSize == 0 {
		c.Bridge.BufferSize = DefaultBufferSize
	}

	// Panel defaults
	if c.Panel.Listen == "" {
		c.Panel.Listen = DefaultPanelListen
	}

	// Simulator defaults
	if c.Simulator.Listen == "" {
		c.Simulator.Listen = DefaultSimulatorListen
	}
	if c.Simulator.UDPListen == "" {
		c.Simulator.UDPListen = DefaultUDPListen
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
