package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pingPeriod   = 30 * time.Second
	readWait     = 90 * time.Second
	maxFrameSize = 1 << 16 // 64KB per text frame is plenty for one contribution
	recvBuffer   = 16
)

// ErrConnectionClosed reports that the peer is gone and no further frames
// can be read from or written to the connection.
var ErrConnectionClosed = errors.New("realtime: connection closed")

// Connection wraps a websocket and coordinates both directions of traffic:
// outbound writes go through a buffered channel drained by a single write
// loop, and inbound text frames are pumped into a receive channel by a single
// read loop. A connection is safe for concurrent use.
//
// The split matters for the session protocol: the session goroutine consumes
// inbound frames one at a time with ReadFrame, while broadcasts and turn
// notifications produced by other participants' goroutines are pushed through
// Send at any moment.
type Connection struct {
	ID string

	ws      *websocket.Conn
	send    chan []byte
	recv    chan string
	done    chan struct{}
	once    sync.Once
	close   chan struct{}
	flushed chan struct{}
}

// NewConnection constructs a Connection with a fresh session ID.
func NewConnection(ws *websocket.Conn) *Connection {
	return &Connection{
		ID:      uuid.NewString(),
		ws:      ws,
		send:    make(chan []byte, 128),
		recv:    make(chan string, recvBuffer),
		done:    make(chan struct{}),
		close:   make(chan struct{}),
		flushed: make(chan struct{}),
	}
}

// Start launches the read and write loops. It must be called exactly once
// per connection.
func (c *Connection) Start() {
	go c.writeLoop()
	go c.readLoop()
}

// Send enqueues payload for delivery. Once the connection has been closed it
// always returns ErrConnectionClosed. If the client is slow and the buffer is
// full, the connection is closed to keep backpressure bounded.
func (c *Connection) Send(payload []byte) error {
	select {
	case <-c.close:
		return ErrConnectionClosed
	default:
	}
	select {
	case <-c.close:
		return ErrConnectionClosed
	case c.send <- payload:
		return nil
	default:
		c.Close(websocket.CloseGoingAway, "send buffer full")
		return errors.New("realtime: connection buffer exceeded")
	}
}

// ReadFrame blocks until the next inbound text frame arrives and returns it.
// Once the peer disconnects it returns ErrConnectionClosed, after first
// draining any frames that arrived before the disconnect.
func (c *Connection) ReadFrame() (string, error) {
	msg, ok := <-c.recv
	if !ok {
		return "", ErrConnectionClosed
	}
	return msg, nil
}

// Done is closed as soon as the read side observes a dead peer. It lets a
// goroutine blocked on something other than ReadFrame (e.g. a turn
// notification) notice the disconnect without consuming queued frames.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// Close terminates the connection and stops both loops. The send buffer is
// never closed, so a Send racing Close cannot panic. Close waits until the
// write loop has flushed frames that were already enqueued, so a farewell
// written just before Close still reaches the peer.
func (c *Connection) Close(code int, reason string) {
	c.once.Do(func() {
		close(c.close)
		select {
		case <-c.flushed:
		case <-time.After(writeWait):
		}
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
		_ = c.ws.Close()
	})
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer close(c.flushed)

	for {
		select {
		case <-c.close:
			c.drainPending()
			return
		case msg := <-c.send:
			if err := c.writeMessage(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.writePing(); err != nil {
				return
			}
		}
	}
}

// drainPending writes out frames still buffered at shutdown.
func (c *Connection) drainPending() {
	for {
		select {
		case msg := <-c.send:
			if err := c.writeMessage(msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Connection) readLoop() {
	defer func() {
		close(c.done)
		close(c.recv)
	}()

	c.ws.SetReadLimit(maxFrameSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(readWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(readWait))
		select {
		case c.recv <- string(data):
		case <-c.close:
			return
		}
	}
}

func (c *Connection) writeMessage(payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func (c *Connection) writePing() error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}
