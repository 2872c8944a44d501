package tmi

import (
	"sync"

	"github.com/gorilla/websocket"
)

// wsConnection is the WebSocket alternative to tlsConnection: Twitch's chat
// servers accept the identical TMI line protocol over a WebSocket at
// wss://irc-ws.chat.twitch.tv:443, framed as text messages instead of a raw
// byte stream. Twitch's own PubSub endpoint is WebSocket-only (see the
// ping/pong keepalive convention in the pubsub protocol this package's
// sibling transport is modeled on), so a client that already needs
// gorilla/websocket for that gains this transport for free.
type wsConnection struct {
	url string

	mu           sync.Mutex
	conn         *websocket.Conn
	closed       bool
	onMessage    func([]byte)
	onDisconnect func()
}

// NewWebSocketConnection returns a ConnectionFactory that dials url (e.g.
// "wss://irc-ws.chat.twitch.tv:443") for every connection it creates.
func NewWebSocketConnection(url string) ConnectionFactory {
	return func() Connection {
		return &wsConnection{url: url}
	}
}

func (c *wsConnection) Connect() bool {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return false
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop(conn)
	return true
}

func (c *wsConnection) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
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

		c.mu.Lock()
		onMessage := c.onMessage
		c.mu.Unlock()
		if onMessage != nil {
			onMessage(data)
		}
	}
}

func (c *wsConnection) Disconnect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}
}

func (c *wsConnection) Send(text string) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return
	}
	conn.WriteMessage(websocket.TextMessage, []byte(text))
}

func (c *wsConnection) SetMessageReceivedDelegate(fn func([]byte)) {
	c.mu.Lock()
	c.onMessage = fn
	c.mu.Unlock()
}

func (c *wsConnection) SetDisconnectedDelegate(fn func()) {
	c.mu.Lock()
	c.onDisconnect = fn
	c.mu.Unlock()
}
