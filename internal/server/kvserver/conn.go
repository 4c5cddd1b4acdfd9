package kvserver

import (
	"bufio"
	"net"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// conn is a single client connection.
type conn struct {
	id      string
	netConn net.Conn
	bw      *bufio.Writer
	limiter *rate.Limiter

	closed atomic.Bool
}

func newConn(id string, c net.Conn, limiter *rate.Limiter) *conn {
	return &conn{
		id:      id,
		netConn: c,
		bw:      bufio.NewWriter(c),
		limiter: limiter,
	}
}

// Close closes the underlying socket once.
func (c *conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

func (c *conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// writeReply writes a complete reply and flushes it.
func (c *conn) writeReply(reply string) error {
	if _, err := c.bw.WriteString(reply); err != nil {
		return err
	}
	return c.bw.Flush()
}
