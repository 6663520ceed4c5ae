package feed

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// EventUpdate is the event type emitted when a row is updated.
const EventUpdate = "UPDATE"

// Record carries the row state included in a change event.
type Record struct {
	ID    int64 `json:"id"`
	Value int64 `json:"value"`
}

// Event is a single change notification as delivered on the wire.
type Event struct {
	Type  string `json:"type"`
	Table string `json:"table"`
	New   Record `json:"new"`
}

// Handler receives the new counter value of each delivered UPDATE event.
// Delivery is at-least-once: events may arrive duplicated or out of order,
// and one final call may still happen after Unsubscribe returns.
type Handler func(value int64)

// Subscriber opens long-lived subscriptions to counter change events.
type Subscriber interface {
	Subscribe(h Handler) (Subscription, error)
}

// Subscription is a handle to an active subscription.
type Subscription interface {
	// Unsubscribe stops delivery. It is idempotent and safe to call
	// concurrently with an in-flight delivery.
	Unsubscribe()
}

// Client is the websocket-backed Subscriber implementation.
type Client struct {
	cfg    Config
	logger *zap.Logger
}

// NewClient creates a feed client for the configured endpoint.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// Ensure *Client implements Subscriber at compile time.
var _ Subscriber = (*Client)(nil)

// Subscribe dials the feed endpoint and starts delivering UPDATE events for
// the configured table to h on a dedicated goroutine. The initial dial is
// synchronous so an unreachable feed surfaces immediately; later connection
// losses are retried with capped exponential backoff until Unsubscribe.
func (c *Client) Subscribe(h Handler) (Subscription, error) {
	conn, _, err := c.dialer().Dial(c.cfg.URL, nil)
	if err != nil {
		return nil, err
	}

	sub := &subscription{stop: make(chan struct{})}
	sub.setConn(conn)

	go c.run(conn, h, sub)

	return sub, nil
}

func (c *Client) dialer() *websocket.Dialer {
	timeout := c.cfg.HandshakeTimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &websocket.Dialer{HandshakeTimeout: time.Duration(timeout) * time.Second}
}

// run pumps events from the connection and reconnects on failure.
func (c *Client) run(conn *websocket.Conn, h Handler, sub *subscription) {
	maxBackoff := time.Duration(c.cfg.MaxBackoffSeconds) * time.Second
	if maxBackoff <= 0 {
		maxBackoff = 30 * time.Second
	}

	for {
		err := c.pump(conn, h, sub)
		if sub.stopped() {
			return
		}
		c.logger.Warn("Feed connection lost, reconnecting", zap.Error(err))

		backoff := time.Second
		for {
			select {
			case <-sub.stop:
				return
			case <-time.After(backoff):
			}

			next, _, err := c.dialer().Dial(c.cfg.URL, nil)
			if err == nil {
				conn = next
				sub.setConn(conn)
				c.logger.Info("Feed reconnected")
				break
			}

			c.logger.Warn("Feed reconnect failed", zap.Error(err), zap.Duration("backoff", backoff))
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}
}

// pump reads events until the connection fails or is closed.
func (c *Client) pump(conn *websocket.Conn, h Handler, sub *subscription) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			c.logger.Debug("Discarding malformed feed payload", zap.Error(err))
			continue
		}
		if ev.Type != EventUpdate || ev.Table != c.cfg.Table {
			continue
		}

		h(ev.New.Value)
	}
}

type subscription struct {
	mu   sync.Mutex
	conn *websocket.Conn
	stop chan struct{}
	once sync.Once
}

func (s *subscription) setConn(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stoppedLocked() {
		// Unsubscribe raced the reconnect; drop the fresh connection.
		_ = conn.Close()
		return
	}
	s.conn = conn
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.stop)
		s.mu.Lock()
		if s.conn != nil {
			_ = s.conn.Close()
		}
		s.mu.Unlock()
	})
}

func (s *subscription) stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stoppedLocked()
}

func (s *subscription) stoppedLocked() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}
