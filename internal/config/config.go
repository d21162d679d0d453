// Package config provides configuration types and loading for fngate.
//
// Configuration comes from an optional fngate.yaml file with environment
// variable overrides. The two settings the gateway cannot run without are
// deliberately plain environment variables as well: INTERNAL_AUTH_TOKEN and
// PORT, so the process can be deployed with no config file at all.
package config

// Config is the top-level configuration for the gateway. It is constructed
// once at process start and treated as read-only afterwards; request
// handling never mutates it, so no synchronization is needed.
type Config struct {
	// Server configures the HTTP listener.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Auth configures the shared-secret bearer authentication.
	Auth AuthConfig `yaml:"auth" mapstructure:"auth"`

	// Audit configures the request audit trail.
	Audit AuditConfig `yaml:"audit" mapstructure:"audit"`

	// Telemetry configures tracing.
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// ServerConfig configures the HTTP server. The listener binds all
// interfaces; this layer assumes a trusted network boundary in front of it.
type ServerConfig struct {
	// Port is the TCP port to listen on. Defaults to 3000.
	// Overridable via PORT or FNGATE_SERVER_PORT.
	Port int `yaml:"port" mapstructure:"port" validate:"omitempty,min=1,max=65535"`

	// LogLevel sets the minimum log level: "debug", "info", "warn", "error".
	// Defaults to "info".
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
}

// AuthConfig configures shared-secret authentication.
type AuthConfig struct {
	// Token is the secret compared against the request bearer token.
	// Set via INTERNAL_AUTH_TOKEN or FNGATE_AUTH_TOKEN. An empty token is
	// NOT a startup error: per contract, every authenticated route answers
	// 500 until the token is configured.
	Token string `yaml:"token" mapstructure:"token"`
}

// AuditConfig configures where audit records are written.
type AuditConfig struct {
	// Output selects the audit sink: "stdout", "file://<absolute-path>"
	// (JSON lines), or "sqlite://<absolute-path>". Defaults to "stdout".
	Output string `yaml:"output" mapstructure:"output" validate:"required,audit_output"`

	// ChannelSize is the buffer size of the async audit channel.
	// Defaults to 1000.
	ChannelSize int `yaml:"channel_size" mapstructure:"channel_size" validate:"omitempty,min=1"`

	// BatchSize is the number of records batched before a write.
	// Defaults to 100.
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size" validate:"omitempty,min=1"`

	// FlushInterval is how often pending records are flushed (e.g. "1s").
	// Defaults to "1s".
	FlushInterval string `yaml:"flush_interval" mapstructure:"flush_interval" validate:"omitempty"`

	// SendTimeout is how long to block when the channel is full before
	// dropping (e.g. "100ms", "0"). Defaults to "100ms".
	SendTimeout string `yaml:"send_timeout" mapstructure:"send_timeout" validate:"omitempty"`

	// WarningThreshold is the channel depth percentage (0-100) at which
	// backpressure warnings are logged. Defaults to 80.
	WarningThreshold int `yaml:"warning_threshold" mapstructure:"warning_threshold" validate:"omitempty,min=0,max=100"`
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	// TraceEnabled turns on span export to stdout. Default off.
	TraceEnabled bool `yaml:"trace_enabled" mapstructure:"trace_enabled"`
}

// SetDefaults applies default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	if c.Audit.Output == "" {
		c.Audit.Output = "stdout"
	}
	if c.Audit.ChannelSize == 0 {
		c.Audit.ChannelSize = 1000
	}
	if c.Audit.BatchSize == 0 {
		c.Audit.BatchSize = 100
	}
	if c.Audit.FlushInterval == "" {
		c.Audit.FlushInterval = "1s"
	}
	if c.Audit.SendTimeout == "" {
		c.Audit.SendTimeout = "100ms"
	}
	if c.Audit.WarningThreshold == 0 {
		c.Audit.WarningThreshold = 80
	}
}
