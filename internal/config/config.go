package config

import "time"

// Config holds client and relay configuration values.
type Config struct {
	LogLevel string       `mapstructure:"log_level" yaml:"log_level"`
	Client   ClientConfig `mapstructure:"client" yaml:"client"`
	Server   ServerConfig `mapstructure:"server" yaml:"server"`
}

// ClientConfig configures the chat client.
type ClientConfig struct {
	Endpoint        string        `mapstructure:"endpoint" yaml:"endpoint"`
	Room            string        `mapstructure:"room" yaml:"room"`
	Username        string        `mapstructure:"username" yaml:"username"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	MaxMessageBytes int64         `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
}

// ServerConfig configures the relay server.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxMessageBytes   int64         `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	ClientBuffer      int           `mapstructure:"client_buffer" yaml:"client_buffer"`
	MessagesPerMinute int           `mapstructure:"messages_per_minute" yaml:"messages_per_minute"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		LogLevel: "info",
		Client: ClientConfig{
			Endpoint:        "ws://localhost:8080/ws",
			Username:        "anon",
			DialTimeout:     10 * time.Second,
			MaxMessageBytes: 32 << 10,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			MaxMessageBytes:   32 << 10,
			ClientBuffer:      16,
			MessagesPerMinute: 0,
		},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}

	if other.Client.Endpoint != "" {
		c.Client.Endpoint = other.Client.Endpoint
	}
	if other.Client.Room != "" {
		c.Client.Room = other.Client.Room
	}
	if other.Client.Username != "" {
		c.Client.Username = other.Client.Username
	}
	if other.Client.DialTimeout != 0 {
		c.Client.DialTimeout = other.Client.DialTimeout
	}
	if other.Client.MaxMessageBytes != 0 {
		c.Client.MaxMessageBytes = other.Client.MaxMessageBytes
	}

	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.ReadHeaderTimeout != 0 {
		c.Server.ReadHeaderTimeout = other.Server.ReadHeaderTimeout
	}
	if other.Server.ShutdownTimeout != 0 {
		c.Server.ShutdownTimeout = other.Server.ShutdownTimeout
	}
	if other.Server.MaxMessageBytes != 0 {
		c.Server.MaxMessageBytes = other.Server.MaxMessageBytes
	}
	if other.Server.ClientBuffer != 0 {
		c.Server.ClientBuffer = other.Server.ClientBuffer
	}
	if other.Server.MessagesPerMinute != 0 {
		c.Server.MessagesPerMinute = other.Server.MessagesPerMinute
	}
}
