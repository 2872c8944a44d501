package tmi

import (
	"crypto/tls"
	"net"
	"sync"
)

// tlsConnection is the default Connection: a plain TLS connection to
// Twitch's chat server, following client.go's tls.Dial("tcp", addr, nil)
// pattern. Unlike the teacher's Client, which hands a bufio.Scanner
// pre-split lines, this delivers raw byte chunks as they arrive off the
// socket — splitting them into frames is the Wire Codec's job, not the
// transport's, since a chunk boundary need not land on a CRLF.
type tlsConnection struct {
	addr string

	mu           sync.Mutex
	conn         net.Conn
	closed       bool
	onMessage    func([]byte)
	onDisconnect func()
}

// NewTLSConnection returns a ConnectionFactory that dials addr
// ("host:port") with TLS for every connection it creates.
func NewTLSConnection(addr string) ConnectionFactory {
	return func() Connection {
		return &tlsConnection{addr: addr}
	}
}

func (c *tlsConnection) Connect() bool {
	conn, err := tls.Dial("tcp", c.addr, nil)
	if err != nil {
		return false
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop(conn)
	return true
}

func (c *tlsConnection) readLoop(conn net.Conn) {
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			c.mu.Lock()
			onMessage := c.onMessage
			c.mu.Unlock()
			if onMessage != nil {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				onMessage(chunk)
			}
		}
		if err != nil {
			c.mu.Lock()
			already := c.closed
			c.closed = true
			onDisconnect := c.onDisconnect
			c.mu.Unlock()
			if !already && onDisconnect != nil {
				onDisconnect()
			}
			return
		}
	}
}

func (c *tlsConnection) Disconnect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

func (c *tlsConnection) Send(text string) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return
	}
	conn.Write([]byte(text))
}

func (c *tlsConnection) SetMessageReceivedDelegate(fn func([]byte)) {
	c.mu.Lock()
	c.onMessage = fn
	c.mu.Unlock()
}

func (c *tlsConnection) SetDisconnectedDelegate(fn func()) {
	c.mu.Lock()
	c.onDisconnect = fn
	c.mu.Unlock()
}
