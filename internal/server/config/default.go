package config

// Default configuration values.
const (
	DefaultKVAddr         = "127.0.0.1:6379"
	DefaultReadBufferSize = 1024
	DefaultRateBurst      = 1

	DefaultHTTPAddr = "127.0.0.1:5080"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			KV: KVConfig{
				Addr:           DefaultKVAddr,
				ReadBufferSize: DefaultReadBufferSize,
				RateBurst:      DefaultRateBurst,
			},
			HTTP: HTTPConfig{
				Enabled: false,
				Addr:    DefaultHTTPAddr,
			},
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
