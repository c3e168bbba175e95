package config

import "time"

// Config is the root configuration.
type Config struct {
	Device    DeviceConfig    `yaml:"device"`
	Bridge    BridgeConfig    `yaml:"bridge"`
	Panel     PanelConfig     `yaml:"panel"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Log       LogConfig       `yaml:"log"`
}

// DeviceConfig locates the LED device.
type DeviceConfig struct {
	// Host is the address the control page is served from (host or host:port).
	// The WebSocket endpoint is derived from it.
	Host string `yaml:"host"`
}

// BridgeConfig holds WebSocket client settings. The reconnect delay is fixed
// and not configurable.
type BridgeConfig struct {
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	PingInterval     time.Duration `yaml:"ping_interval"`
	PingTimeout      time.Duration `yaml:"ping_timeout"`
	BufferSize       int           `yaml:"buffer_size"`
}

// PanelConfig holds the control panel HTTP settings.
type PanelConfig struct {
	Listen string `yaml:"listen"`
}

// SimulatorConfig holds the device simulator settings.
type SimulatorConfig struct {
	Listen    string `yaml:"listen"`
	UDPListen string `yaml:"udp_listen"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}
