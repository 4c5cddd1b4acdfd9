package config

// ServerConfig is the root configuration for memkv-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server" yaml:"server"`
	Log    LogSection    `koanf:"log" yaml:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	KV   KVConfig   `koanf:"kv" yaml:"kv"`
	HTTP HTTPConfig `koanf:"http" yaml:"http"`
}

// KVConfig configures the key-value protocol listener.
type KVConfig struct {
	// Addr is the TCP listen address.
	Addr string `koanf:"addr" yaml:"addr"`

	// ReadBufferSize is the per-connection read buffer. One read is one
	// request; longer requests are not reassembled.
	ReadBufferSize int `koanf:"read_buffer_size" yaml:"read_buffer_size"`

	// RateLimit is the maximum commands per second per connection.
	// Zero disables throttling.
	RateLimit float64 `koanf:"rate_limit" yaml:"rate_limit"`

	// RateBurst is the token bucket size when RateLimit is set.
	RateBurst int `koanf:"rate_burst" yaml:"rate_burst"`
}

// HTTPConfig configures the admin HTTP endpoint.
type HTTPConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Addr    string `koanf:"addr" yaml:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}
