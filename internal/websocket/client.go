package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"bookmark-reorder-be/internal/dto"
	"bookmark-reorder-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// inboundFrame is one drag gesture message from the client. The type selects
// which fields matter.
type inboundFrame struct {
	Type    string                    `json:"type"`
	Begin   *dto.BeginDragRequest     `json:"begin,omitempty"`
	Pointer *dto.PointerSampleRequest `json:"pointer,omitempty"`
	Hover   *dto.HoverRequest         `json:"hover,omitempty"`
	Leave   *dto.LeaveRequest         `json:"leave,omitempty"`
}

type outboundFrame struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// UserID associated with this connection
	UserID uuid.UUID

	// Buffered channel of outbound messages.
	Send chan []byte

	drag service.IDragService
}

// readPump parses drag frames off the connection and drives the drag service;
// every outcome is mirrored to all of the user's connections via the hub.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error for user %s: %v", c.UserID, err)
			}
			break
		}
		c.handleFrame(raw)
	}
}

func (c *Client) handleFrame(raw []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		c.Hub.Send(c.UserID, outboundFrame{Type: "error", Error: "malformed frame"})
		return
	}

	ctx := context.Background()

	var (
		data interface{}
		err  error
	)
	switch frame.Type {
	case "begin":
		if frame.Begin == nil {
			err = errMissingPayload(frame.Type)
			break
		}
		data, err = c.drag.Begin(ctx, c.UserID, frame.Begin)
	case "pointer":
		if frame.Pointer == nil {
			err = errMissingPayload(frame.Type)
			break
		}
		data, err = c.drag.Pointer(frame.Pointer)
	case "hover":
		if frame.Hover == nil {
			err = errMissingPayload(frame.Type)
			break
		}
		data, err = c.drag.Hover(frame.Hover)
	case "leave":
		if frame.Leave == nil {
			err = errMissingPayload(frame.Type)
			break
		}
		data, err = c.drag.Leave(frame.Leave)
	case "drop":
		data, err = c.drag.Drop(ctx)
	case "cancel":
		data, err = c.drag.Cancel()
	default:
		c.Hub.Send(c.UserID, outboundFrame{Type: "error", Error: "unknown frame type: " + frame.Type})
		return
	}

	if err != nil {
		c.Hub.Send(c.UserID, outboundFrame{Type: frame.Type + "_failed", Error: err.Error()})
		return
	}
	c.Hub.Send(c.UserID, outboundFrame{Type: frame.Type + "_ok", Data: data})
}

func errMissingPayload(frameType string) error {
	return fmt.Errorf("frame %s is missing its payload", frameType)
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush any frames queued behind this one.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
