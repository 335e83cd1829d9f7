package channel

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gabrielstonedelza/merchantplus-console/internal/config"
	"github.com/gabrielstonedelza/merchantplus-console/internal/domain"
	"github.com/gabrielstonedelza/merchantplus-console/internal/platform/logger"
	"github.com/gabrielstonedelza/merchantplus-console/internal/protocol"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Connection lifecycle states.
const (
	StateIdle       = "idle"
	StateConnecting = "connecting"
	StateOpen       = "open"
	StateClosed     = "closed"
)

const (
	baseReconnectDelay   = 1000 * time.Millisecond
	maxReconnectDelay    = 30000 * time.Millisecond
	maxReconnectAttempts = 10
)

// EventChannel owns one websocket connection to the admin push endpoint
// for a single tenant.  It reconnects automatically with exponential
// backoff and dispatches inbound messages to registered subscribers.
//
// All configuration is passed in explicitly; there is no ambient tenant
// or session state.
type EventChannel struct {
	endpoint  string
	authToken string
	channelID string

	mu         sync.Mutex
	state      string
	conn       *websocket.Conn
	attempts   int
	retryTimer *time.Timer

	writeMu sync.Mutex

	listeners *listenerRegistry

	log *logrus.Entry
}

// NewEventChannel builds a channel scoped to one tenant.  The connection
// is not opened until Connect() is called.
func NewEventChannel(cfg *config.Config, tenant domain.TenantID) *EventChannel {
	channelID := uuid.NewString()

	return &EventChannel{
		endpoint:  buildEndpoint(cfg.WebsocketUrl, tenant),
		authToken: cfg.AuthToken,
		channelID: channelID,
		state:     StateIdle,
		listeners: newListenerRegistry(),
		log:       logger.Log.WithFields(logrus.Fields{"channel_id": channelID, "tenant": tenant}),
	}
}

func buildEndpoint(websocketUrl string, tenant domain.TenantID) string {
	u, err := url.Parse(websocketUrl)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"error": err, "url": websocketUrl}).Error("Invalid websocket url")
		return websocketUrl
	}

	query := u.Query()
	query.Set("company_id", tenant.String())
	u.RawQuery = query.Encode()

	return u.String()
}

// Connect opens the connection.  It is idempotent:  calling it while the
// channel is already connecting or open has no additional effect, so a
// redundant call can never produce a duplicate socket.  Calling it after
// the retry budget is exhausted starts a fresh budget.  Success and
// failure surface asynchronously as "connection" status messages.
func (c *EventChannel) Connect() {
	c.mu.Lock()

	if c.state == StateConnecting || c.state == StateOpen {
		c.mu.Unlock()
		c.log.Debug("Connect called while already connecting or connected, ignoring")
		return
	}

	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	} else {
		// No retry timer means this call came from a caller rather than
		// the backoff timer, so it starts a fresh retry budget
		c.attempts = 0
	}

	c.state = StateConnecting
	c.mu.Unlock()

	c.emitConnectionStatus(protocol.StatusConnecting)

	go c.dial()
}

func (c *EventChannel) dial() {
	header := http.Header{}
	if c.authToken != "" {
		header.Set("Authorization", "Bearer "+c.authToken)
	}

	conn, _, err := websocket.DefaultDialer.Dial(c.endpoint, header)
	if err != nil {
		c.log.WithFields(logrus.Fields{"error": err}).Error("Unable to connect to the event channel")

		c.mu.Lock()
		if c.state != StateConnecting {
			// Torn down while dialing
			c.mu.Unlock()
			return
		}
		c.state = StateClosed
		c.mu.Unlock()

		c.emitConnectionStatus(protocol.StatusError)
		c.scheduleReconnect()
		return
	}

	c.mu.Lock()
	if c.state != StateConnecting {
		// Torn down while dialing
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.state = StateOpen
	c.attempts = 0
	c.mu.Unlock()

	c.log.Info("Connected to the admin event channel")
	metrics.connectionStateGauge.Set(1)

	c.emitConnectionStatus(protocol.StatusConnected)

	go c.readLoop(conn)
}

func (c *EventChannel) readLoop(conn *websocket.Conn) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			c.log.WithFields(logrus.Fields{"error": err}).Debug("Event channel connection closed")
			break
		}

		c.handleFrame(payload)
	}

	c.mu.Lock()
	if c.conn != conn {
		// Superseded by a newer connection or torn down
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.state = StateClosed
	c.mu.Unlock()

	metrics.connectionStateGauge.Set(0)

	c.emitConnectionStatus(protocol.StatusDisconnected)
	c.scheduleReconnect()
}

func (c *EventChannel) scheduleReconnect() {
	c.mu.Lock()

	if c.state != StateClosed {
		c.mu.Unlock()
		return
	}

	if c.attempts >= maxReconnectAttempts {
		c.mu.Unlock()
		c.log.Warn("Reconnect attempt budget exhausted, giving up")
		c.emitConnectionStatus(protocol.StatusUnavailable)
		return
	}

	delay := reconnectDelay(c.attempts)
	c.attempts++
	attempt := c.attempts
	c.retryTimer = time.AfterFunc(delay, c.Connect)
	c.mu.Unlock()

	metrics.reconnectAttemptCounter.Inc()
	c.log.Infof("Reconnecting in %s (attempt %d)", delay, attempt)
}

// reconnectDelay computes the backoff before the given zero-based
// attempt:  min(1000ms * 2^attempt, 30s), no jitter.
func reconnectDelay(attempt int) time.Duration {
	delay := baseReconnectDelay << uint(attempt)
	if delay > maxReconnectDelay || delay <= 0 {
		return maxReconnectDelay
	}
	return delay
}

// On registers a callback for a message type, the catch-all "message"
// type, or the synthetic "connection" status type.  It returns an
// unsubscribe function.
func (c *EventChannel) On(eventType string, callback EventCallback) func() {
	l := c.listeners.register(eventType, callback)

	return func() {
		c.listeners.unregister(eventType, l)
	}
}

// Send marshals the payload and writes it to the connection.  It is
// best-effort:  if the connection is not currently open the message is
// dropped silently.
func (c *EventChannel) Send(payload interface{}) {
	c.mu.Lock()
	conn := c.conn
	open := c.state == StateOpen
	c.mu.Unlock()

	if open == false || conn == nil {
		metrics.droppedSendCounter.Inc()
		c.log.Debug("Dropping outbound message, connection is not open")
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		c.log.WithFields(logrus.Fields{"error": err}).Error("Unable to marshal outbound message")
		return
	}

	c.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	c.writeMu.Unlock()

	if err != nil {
		c.log.WithFields(logrus.Fields{"error": err}).Debug("Unable to write outbound message")
	}
}

// Disconnect cancels any pending reconnect, closes the connection and
// clears all subscriptions.  It is safe to call repeatedly and from an
// already torn-down channel.
func (c *EventChannel) Disconnect() {
	c.mu.Lock()
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
	conn := c.conn
	c.conn = nil
	c.state = StateIdle
	c.attempts = 0
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
		metrics.connectionStateGauge.Set(0)
	}

	c.listeners.clear()
}

// State reports the current lifecycle state.
func (c *EventChannel) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *EventChannel) handleFrame(payload []byte) {
	msg, err := protocol.ParseMessage(payload)
	if err != nil {
		metrics.messageParseFailureCounter.Inc()
		c.log.WithFields(logrus.Fields{"error": err}).Error("Dropping unparseable inbound frame")
		return
	}

	metrics.messageReceivedCounter.With(prometheus.Labels{"type": msg.Type}).Inc()

	c.dispatch(msg.Type, *msg)
	c.dispatch(protocol.TypeMessage, *msg)
}

func (c *EventChannel) emitConnectionStatus(status string) {
	c.dispatch(protocol.TypeConnection, protocol.NewConnectionMessage(status))
}

func (c *EventChannel) dispatch(eventType string, msg protocol.Message) {
	for _, callback := range c.listeners.snapshot(eventType) {
		c.invoke(eventType, callback, msg)
	}
}

// invoke isolates one callback so a panicking subscriber cannot break
// dispatch to the others or take down the channel.
func (c *EventChannel) invoke(eventType string, callback EventCallback, msg protocol.Message) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithFields(logrus.Fields{"panic": r, "type": eventType}).Error("Subscriber callback panicked")
		}
	}()

	callback(msg)
}
