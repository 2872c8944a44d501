// Package tmitest provides test doubles for exercising the tmi engine
// without a real network connection or wall clock, in the same spirit as
// the teacher package's irctest.Server mock.
package tmitest

import (
	"strings"
	"sync"

	tmi "github.com/rhymu8354/go-twitch-messaging"
)

// FakeConnection is a tmi.Connection that records every outbound line
// instead of writing to a socket, and lets a test feed inbound lines
// straight to the engine's message-received callback.
//
// Connect always succeeds unless FailConnect is set. Don't share one
// instance between two engines; build a new one per LogIn via Factory.
type FakeConnection struct {
	FailConnect bool

	mu           sync.Mutex
	sent         []string
	onMessage    func([]byte)
	onDisconnect func()
	disconnected bool
}

// Factory returns a tmi.ConnectionFactory that always hands out conn. It's
// the caller's responsibility to know only one LogIn will be in flight at a
// time in a test, since a second Connect would reuse the same recorder.
func Factory(conn *FakeConnection) tmi.ConnectionFactory {
	return func() tmi.Connection { return conn }
}

func NewFakeConnection() *FakeConnection {
	return &FakeConnection{}
}

func (c *FakeConnection) Connect() bool {
	return !c.FailConnect
}

func (c *FakeConnection) Disconnect() {
	c.mu.Lock()
	c.disconnected = true
	c.mu.Unlock()
}

func (c *FakeConnection) Send(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, strings.TrimSuffix(text, "\r\n"))
}

func (c *FakeConnection) SetMessageReceivedDelegate(fn func(data []byte)) {
	c.mu.Lock()
	c.onMessage = fn
	c.mu.Unlock()
}

func (c *FakeConnection) SetDisconnectedDelegate(fn func()) {
	c.mu.Lock()
	c.onDisconnect = fn
	c.mu.Unlock()
}

// Receive delivers line, with "\r\n" appended, to whatever callback the
// engine registered with SetMessageReceivedDelegate. It is a no-op before
// that registration happens.
func (c *FakeConnection) Receive(line string) {
	c.mu.Lock()
	onMessage := c.onMessage
	c.mu.Unlock()
	if onMessage != nil {
		onMessage([]byte(line + "\r\n"))
	}
}

// SimulateDisconnect invokes the disconnected delegate, as if the remote
// end had closed the connection.
func (c *FakeConnection) SimulateDisconnect() {
	c.mu.Lock()
	onDisconnect := c.onDisconnect
	c.mu.Unlock()
	if onDisconnect != nil {
		onDisconnect()
	}
}

// Sent returns every line handed to Send so far, CRLF stripped, in order.
func (c *FakeConnection) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.sent))
	copy(out, c.sent)
	return out
}

// Disconnected reports whether Disconnect has been called.
func (c *FakeConnection) Disconnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnected
}
