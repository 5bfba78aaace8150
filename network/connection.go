// network/connection.go
package network

import (
	"encoding/json"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

// Packet is one event frame: {"event": "...", "data": {...}}.
type Packet struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode builds the wire form of an event. A nil payload omits data.
func Encode(event string, payload interface{}) ([]byte, error) {
	p := Packet{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		p.Data = data
	}
	return json.Marshal(p)
}

// Decode parses a frame into a packet.
func Decode(frame []byte) (*Packet, error) {
	var p Packet
	if err := json.Unmarshal(frame, &p); err != nil {
		return nil, err
	}
	if p.Event == "" {
		return nil, ErrMissingEvent
	}
	return &p, nil
}

type Connection interface {
	Write(data []byte) error
	Ping() error
	Close() error
	RemoteAddr() net.Addr
	SetHeartbeat(interval time.Duration)
	ReadPacket() (*Packet, error)
}

const writeWait = 10 * time.Second

// WSConnection is not safe for concurrent writes; the owning session's
// write pump is the only writer.
type WSConnection struct {
	conn      *websocket.Conn
	heartbeat time.Duration
}

func NewWSConnection(conn *websocket.Conn, readLimit int64) *WSConnection {
	if readLimit > 0 {
		conn.SetReadLimit(readLimit)
	}
	return &WSConnection{conn: conn}
}

func (c *WSConnection) Write(data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *WSConnection) Ping() error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// ReadPacket skips frames that are not valid event envelopes; only
// transport errors end the read.
func (c *WSConnection) ReadPacket() (*Packet, error) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		packet, err := Decode(data)
		if err != nil {
			continue
		}
		return packet, nil
	}
}

// SetHeartbeat expects a ping every interval and allows two missed pongs.
func (c *WSConnection) SetHeartbeat(interval time.Duration) {
	c.heartbeat = interval
	c.conn.SetReadDeadline(time.Now().Add(interval * 2))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.heartbeat * 2))
	})
}

func (c *WSConnection) Close() error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
