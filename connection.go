package tmi

// Connection abstracts the transport beneath the engine: something that can
// connect, disconnect, send raw lines, and deliver received bytes and a
// disconnection notice through callbacks. The engine never parses a
// connection's internals; it only drives this interface.
//
// Connect is the only synchronous method; everything else either returns
// immediately or is a callback invoked by the Connection itself on
// whatever goroutine its I/O happens to run on.
type Connection interface {
	// Connect establishes the connection and reports whether it succeeded.
	Connect() bool

	// Disconnect tears the connection down. It is safe to call more than
	// once; implementations should make the second call a no-op.
	Disconnect()

	// Send writes text, with CRLF already appended, to the connection.
	// Send does not block the caller on network I/O completing.
	Send(text string)

	// SetMessageReceivedDelegate registers the function called with each
	// chunk of bytes read from the connection. fn may be called from any
	// goroutine and must not block.
	SetMessageReceivedDelegate(fn func(data []byte))

	// SetDisconnectedDelegate registers the function called when the
	// connection closes for any reason other than a local Disconnect call
	// that already completed.
	SetDisconnectedDelegate(fn func())
}

// ConnectionFactory builds a fresh, not-yet-connected Connection. The
// engine calls it once per LogIn action.
type ConnectionFactory func() Connection
