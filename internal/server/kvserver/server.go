package kvserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/memkv/internal/core/command"
	"github.com/yndnr/memkv/internal/telemetry/logger"
	"github.com/yndnr/memkv/internal/telemetry/metric"
)

// ErrServerClosed is returned by Serve and ListenAndServe after Shutdown.
var ErrServerClosed = errors.New("kvserver: server closed")

const (
	// DefaultAddr is the address the server binds when none is configured.
	DefaultAddr = "127.0.0.1:6379"

	// DefaultReadBufferSize bounds a single request.
	DefaultReadBufferSize = 1024

	maxAcceptDelay = time.Second
)

// Config holds the KV server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// ReadBufferSize is the size of the per-connection read buffer.
	ReadBufferSize int
	// RateLimit is the maximum commands per second per connection.
	// Zero disables throttling.
	RateLimit float64
	// RateBurst is the token bucket size used with RateLimit.
	RateBurst int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Addr:           DefaultAddr,
		ReadBufferSize: DefaultReadBufferSize,
		RateBurst:      1,
	}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// Server is the KV protocol server.
type Server struct {
	cfg      Config
	store    command.Store
	registry *command.Registry
	logger   logger.Logger
	metrics  *metric.Registry

	mu       sync.Mutex
	ln       net.Listener
	conns    map[*conn]struct{}
	shutdown bool
	wg       sync.WaitGroup
}

// New creates a server that executes commands from registry against store.
func New(cfg Config, store command.Store, registry *command.Registry, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = DefaultReadBufferSize
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 1
	}
	if registry == nil {
		registry = command.DefaultRegistry()
	}

	s := &Server{
		cfg:      cfg,
		store:    store,
		registry: registry,
		logger:   logger.Default(),
		conns:    make(map[*conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenAndServe binds cfg.Addr and serves until Shutdown or ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("kvserver: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until Shutdown is called, ctx is done,
// or the listener fails. It returns nil after a clean stop.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		_ = ln.Close()
		return ErrServerClosed
	}
	s.ln = ln
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, s.closeAll)
	defer stop()

	ctx = logger.WithLogger(ctx, s.logger)

	s.logger.Info("kv server listening", "address", ln.Addr().String())
	return s.acceptLoop(ctx, ln)
}

// Addr returns the bound listener address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting, closes every open connection and waits for
// connection goroutines to exit or ctx to be done.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.closeListener()
	s.closeConns()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.logger.Info("kv server stopped")
	return err
}

func (s *Server) closeAll() {
	_ = s.closeListener()
	s.closeConns()
}

func (s *Server) closeListener() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdown = true
	if s.ln == nil {
		return nil
	}
	if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		_ = c.Close()
	}
}

func (s *Server) isShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdown
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	var delay time.Duration
	for {
		nc, err := ln.Accept()
		if err != nil {
			if s.isShutdown() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("kvserver: accept: %w", err)
			}
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay *= 2
			}
			if delay > maxAcceptDelay {
				delay = maxAcceptDelay
			}
			s.logger.Warn("accept error, retrying", "error", err, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil
			}
			continue
		}
		delay = 0

		c := newConn(ulid.Make().String(), nc, s.newLimiter())
		if !s.track(c) {
			_ = c.Close()
			return nil
		}
		go func() {
			defer s.wg.Done()
			defer s.untrack(c)
			s.serveConn(logger.WithConnID(ctx, c.id), c)
		}()
	}
}

// track registers c. It reports false once shutdown has begun, so no
// goroutine is added after Shutdown starts waiting.
func (s *Server) track(c *conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdown {
		return false
	}
	s.conns[c] = struct{}{}
	s.wg.Add(1)
	if s.metrics != nil {
		s.metrics.ConnectionsTotal.Inc()
		s.metrics.ConnectionsActive.Inc()
	}
	return true
}

func (s *Server) untrack(c *conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c)
	if s.metrics != nil {
		s.metrics.ConnectionsActive.Dec()
	}
}

func (s *Server) newLimiter() *rate.Limiter {
	if s.cfg.RateLimit <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(s.cfg.RateLimit), s.cfg.RateBurst)
}

func (s *Server) serveConn(ctx context.Context, c *conn) {
	defer c.Close()

	log := logger.L(ctx).With("remote", c.RemoteAddr().String())
	log.Debug("connection accepted")

	buf := make([]byte, s.cfg.ReadBufferSize)
	for {
		n, err := c.netConn.Read(buf)
		if n > 0 {
			if werr := s.handle(ctx, c, buf[:n]); werr != nil {
				if !c.closed.Load() {
					log.Debug("connection write error", "error", werr)
				}
				return
			}
		}
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				log.Debug("connection closed by client")
			case c.closed.Load() || errors.Is(err, net.ErrClosed):
				log.Debug("connection closed by server")
			default:
				log.Warn("connection read error", "error", err)
			}
			return
		}
		if n == 0 {
			log.Debug("connection closed by client")
			return
		}
	}
}

// handle executes one request and writes its reply.
func (s *Server) handle(ctx context.Context, c *conn, req []byte) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	start := time.Now()
	name, args := command.ParseRequest(req)
	reply := command.Execute(name, args, s.store, s.registry)
	s.observe(name, reply, time.Since(start))

	return c.writeReply(reply)
}

func (s *Server) observe(name, reply string, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	label := metric.UnknownCommand
	if cmd, ok := s.registry.Lookup(name); ok {
		label = cmd.Name()
	}
	status := metric.StatusOK
	if strings.HasPrefix(reply, "-") {
		status = metric.StatusError
	}
	s.metrics.ObserveCommand(label, status, elapsed.Seconds())
}
