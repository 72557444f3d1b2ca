package net

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"PixelBoard/internal/logging"
)

const (
	sendQueue  = 16
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// viewer is one connected websocket client. Frames queue on send and are
// written by the viewer's own goroutine so a slow client never blocks the
// editor.
type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks the connected viewers.
type Hub struct {
	mu      sync.RWMutex
	viewers map[*viewer]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{viewers: make(map[*viewer]bool)}
}

// add registers conn and starts its writer.
func (h *Hub) add(conn *websocket.Conn) *viewer {
	v := &viewer{conn: conn, send: make(chan []byte, sendQueue)}
	h.mu.Lock()
	h.viewers[v] = true
	h.mu.Unlock()
	logging.Logger().Info("viewer connected", "component", "hub", "remote", conn.RemoteAddr().String())
	go v.writeLoop()
	return v
}

// remove unregisters v and stops its writer. Removing twice is harmless.
func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.viewers[v] {
		return
	}
	delete(h.viewers, v)
	close(v.send)
	logging.Logger().Info("viewer disconnected", "component", "hub", "remote", v.conn.RemoteAddr().String())
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Broadcast queues data for every viewer. Viewers whose queue is full are
// disconnected.
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		select {
		case v.send <- data:
		default:
			logging.Logger().Warn("dropping slow viewer", "component", "hub", "remote", v.conn.RemoteAddr().String())
			delete(h.viewers, v)
			close(v.send)
		}
	}
}

// sendTo queues data for a single viewer if it is still connected.
func (h *Hub) sendTo(v *viewer, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.viewers[v] {
		return
	}
	select {
	case v.send <- data:
	default:
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		delete(h.viewers, v)
		close(v.send)
	}
}

func (v *viewer) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		v.conn.Close()
	}()
	for {
		select {
		case data, ok := <-v.send:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				v.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logging.Logger().Debug("viewer write failed", "component", "hub", "err", err)
				return
			}
		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
