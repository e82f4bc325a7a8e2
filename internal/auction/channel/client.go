// Package channel maintains the persistent real-time connection to the
// auction server and binds its pushed events to view updates.
package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Handler receives every inbound envelope from the read pump.
type Handler interface {
	HandleEvent(env Envelope)
}

// Emitter sends outbound events to the server. The websocket Client
// implements it; tests substitute a recorder.
type Emitter interface {
	Emit(event EventType, payload interface{}) error
}

// ClientConfig holds configuration for the websocket connection.
type ClientConfig struct {
	URL            string
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	SendBufferSize int
	RequestHeader  http.Header
}

// DefaultClientConfig returns the default websocket configuration for the
// channel at the given URL.
func DefaultClientConfig(url string) ClientConfig {
	return ClientConfig{
		URL:            url,
		WriteTimeout:   10 * time.Second,
		ReadTimeout:    60 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: 512 * 1024, // full-state pushes carry every bid list
		SendBufferSize: 64,
	}
}

// Client is one persistent connection to the server's real-time channel.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	handler Handler
	config  ClientConfig

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to the channel and starts the read/write pumps. Inbound
// events are delivered to handler sequentially from the read pump.
func Dial(ctx context.Context, config ClientConfig, handler Handler) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, config.URL, config.RequestHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to dial auction channel: %w", err)
	}

	c := &Client{
		id:      uuid.New().String(),
		conn:    conn,
		send:    make(chan []byte, config.SendBufferSize),
		handler: handler,
		config:  config,
		done:    make(chan struct{}),
	}

	go c.writePump()
	go c.readPump()

	log.Info().
		Str("connection_id", c.id).
		Str("url", config.URL).
		Msg("auction channel connected")

	return c, nil
}

// Emit queues an outbound envelope. It fails when the send buffer is full
// or the connection is closed.
func (c *Client) Emit(event EventType, payload interface{}) error {
	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", event, err)
		}
		env.Data = data
	}

	message, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	select {
	case <-c.done:
		return fmt.Errorf("emit %s: connection closed", event)
	case c.send <- message:
		return nil
	default:
		return fmt.Errorf("emit %s: send buffer full", event)
	}
}

// Done is closed when the connection shuts down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close shuts the connection down.
func (c *Client) Close() error {
	c.shutdown()
	return nil
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
		log.Info().Str("connection_id", c.id).Msg("auction channel closed")
	})
}

// writePump sends queued envelopes and keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.shutdown()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.id).
					Msg("failed to write to auction channel")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.id).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump delivers inbound envelopes to the handler.
func (c *Client) readPump() {
	defer c.shutdown()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.id).
					Msg("unexpected auction channel close")
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Error().
				Err(err).
				Str("connection_id", c.id).
				Msg("failed to decode channel envelope")
			continue
		}
		c.handler.HandleEvent(env)
	}
}
