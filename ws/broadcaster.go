package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sessionhub/sessionhub/logging"
	"github.com/sessionhub/sessionhub/session"
)

// Options configure a Broadcaster.
type Options struct {
	// SendBuffer is the per-client outgoing frame buffer. A client that
	// falls this many frames behind is disconnected.
	SendBuffer int
	// CheckOrigin overrides the upgrader's origin check. Defaults to the
	// gorilla same-origin policy.
	CheckOrigin func(r *http.Request) bool
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Broadcaster serves the store's transition events over WebSocket. It
// implements http.Handler; mount it on the route UI clients connect to.
type Broadcaster struct {
	store    *session.Store
	upgrader websocket.Upgrader
	logger   logging.Logger
	buffer   int

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	sub  *session.Subscription
	send chan []byte
	once sync.Once
}

// NewBroadcaster creates a broadcaster fanning out events from store.
func NewBroadcaster(store *session.Store, optFns ...func(o *Options)) *Broadcaster {
	opts := Options{
		SendBuffer: 64,
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Broadcaster{
		store:    store,
		upgrader: websocket.Upgrader{CheckOrigin: opts.CheckOrigin},
		logger:   opts.Logger,
		buffer:   opts.SendBuffer,
		clients:  make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and streams session events until the client
// disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn("ws upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	c := b.addClient(conn)
	b.logger.Debug("ws client connected", "remote", r.RemoteAddr)

	// Inbound frames are ignored; reading only detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	b.removeClient(c)
	b.logger.Debug("ws client disconnected", "remote", r.RemoteAddr)
}

func (b *Broadcaster) addClient(conn *websocket.Conn) *client {
	c := &client{
		conn: conn,
		sub:  b.store.Subscribe(),
		send: make(chan []byte, b.buffer),
	}
	b.mu.Lock()
	b.clients[c] = struct{}{}
	b.mu.Unlock()

	go c.writePump()
	go b.forward(c)
	return c
}

func (b *Broadcaster) removeClient(c *client) {
	b.mu.Lock()
	delete(b.clients, c)
	b.mu.Unlock()
	c.close()
}

// forward drains the client's store subscription into its send channel. The
// subscription queue is unbounded; the send channel is where the slow-client
// policy applies. forward is the sole sender on c.send and closes it when the
// subscription ends.
func (b *Broadcaster) forward(c *client) {
	defer close(c.send)
	for ev := range c.sub.Events() {
		data, err := json.Marshal(Message{Type: MsgEvent, Event: ev})
		if err != nil {
			b.logger.Error("ws marshal failed", "error", err)
			continue
		}
		select {
		case c.send <- data:
		default:
			b.logger.Warn("ws client too slow, disconnecting")
			b.removeClient(c)
			return
		}
	}
}

// ClientCount reports the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// close shuts down the subscription and the connection. The send channel is
// closed by forward once the subscription drains.
func (c *client) close() {
	c.once.Do(func() {
		c.sub.Close()
		c.conn.Close()
	})
}
