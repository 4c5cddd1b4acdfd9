package connection

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/resp"
)

// ErrNotConnected is returned when a request is made on a closed client.
var ErrNotConnected = errors.New("connection: not connected")

// ErrEmptyCommand is returned when Do is called without words.
var ErrEmptyCommand = errors.New("connection: empty command")

// DefaultDialTimeout bounds Dial when ctx carries no deadline.
const DefaultDialTimeout = 5 * time.Second

// Client is a connection to a memkv server. It is safe for concurrent
// use; requests are serialized.
type Client struct {
	addr string

	mu   sync.Mutex
	conn net.Conn
	rd   *resp.Reader
}

// Dial connects to the server at addr.
func Dial(ctx context.Context, addr string) (*Client, error) {
	d := net.Dialer{Timeout: DefaultDialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return &Client{
		addr: addr,
		conn: conn,
		rd:   resp.NewReader(conn),
	}, nil
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Do sends words as one request line and returns the decoded reply.
// A server error reply is a value of type resp.Error, not a Go error.
func (c *Client) Do(ctx context.Context, words ...string) (resp.Value, error) {
	if len(words) == 0 {
		return resp.Value{}, ErrEmptyCommand
	}
	return c.DoLine(ctx, strings.Join(words, " "))
}

// DoLine sends a raw request line. The line must not contain CR or LF.
func (c *Client) DoLine(ctx context.Context, line string) (resp.Value, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn := c.conn
	if conn == nil {
		return resp.Value{}, ErrNotConnected
	}

	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		return resp.Value{}, err
	}

	// The callback may still be running after stop returns, so it must not
	// touch c.conn, which Close clears.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if _, err := conn.Write([]byte(line + "\r\n")); err != nil {
		return resp.Value{}, c.wrapErr(ctx, "write", err)
	}
	v, _, err := c.rd.ReadValue()
	if err != nil {
		return resp.Value{}, c.wrapErr(ctx, "read", err)
	}
	return v, nil
}

func (c *Client) wrapErr(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s %s: %w", op, c.addr, ctxErr)
	}
	// The socket deadline can fire just before the context timer does.
	if dl, ok := ctx.Deadline(); ok && !time.Now().Before(dl) {
		return fmt.Errorf("%s %s: %w", op, c.addr, context.DeadlineExceeded)
	}
	return fmt.Errorf("%s %s: %w", op, c.addr, err)
}

// Close closes the connection. Closing twice is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
