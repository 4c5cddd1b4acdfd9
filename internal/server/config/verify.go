package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/memkv/internal/telemetry/logger"
)

// Read buffer bounds.
const (
	MinReadBufferSize = 16
	MaxReadBufferSize = 1 << 20
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyKV(&cfg.Server.KV); err != nil {
		return err
	}
	if err := verifyHTTP(&cfg.Server.HTTP); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyKV(cfg *KVConfig) error {
	if err := verifyAddr("server.kv.addr", cfg.Addr); err != nil {
		return err
	}
	if cfg.ReadBufferSize < MinReadBufferSize || cfg.ReadBufferSize > MaxReadBufferSize {
		return fmt.Errorf("server.kv.read_buffer_size must be between %d and %d, got %d",
			MinReadBufferSize, MaxReadBufferSize, cfg.ReadBufferSize)
	}
	if cfg.RateLimit < 0 {
		return errors.New("server.kv.rate_limit must not be negative")
	}
	if cfg.RateLimit > 0 && cfg.RateBurst < 1 {
		return errors.New("server.kv.rate_burst must be at least 1 when rate_limit is set")
	}
	return nil
}

func verifyHTTP(cfg *HTTPConfig) error {
	if !cfg.Enabled {
		return nil
	}
	return verifyAddr("server.http.addr", cfg.Addr)
}

func verifyLog(cfg *LogSection) error {
	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
		return nil
	default:
		return fmt.Errorf("log.format must be json or text, got %q", cfg.Format)
	}
}

func verifyAddr(key, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", key)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
