// Package net serves a read-only live view of the picture to browsers on
// the local network and finds such viewers through mDNS.
package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"PixelBoard/internal/export"
	"PixelBoard/internal/logging"
	"PixelBoard/internal/state"
)

// Source provides the picture to show. *state.Document implements it.
type Source interface {
	ID() string
	Snapshot() (*state.Grid, uint64)
}

// Frame is the websocket message describing one revision of the picture.
type Frame struct {
	Document string          `json:"document"`
	Revision uint64          `json:"revision"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Rows     [][]state.Color `json:"rows"`
}

// Server is the viewer HTTP server. It never accepts edits.
type Server struct {
	src      Source
	hub      *Hub
	upgrader websocket.Upgrader
	baseName func() string
	httpSrv  *http.Server
	listener net.Listener
}

// NewServer serves src. baseName supplies the download file name; nil
// means the default name.
func NewServer(src Source, baseName func() string) *Server {
	if baseName == nil {
		baseName = func() string { return export.DefaultBaseName }
	}
	s := &Server{
		src:      src,
		hub:      NewHub(),
		baseName: baseName,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	return s
}

// Hub returns the viewer set.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the HTTP routes of the viewer.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /image.png", s.handleImage)
	mux.HandleFunc("GET /ws", s.handleWS)
	return mux
}

// Publish sends a frame for g to every viewer. Its signature matches
// state.ChangeFunc so it can be registered with Document.OnChange.
func (s *Server) Publish(g *state.Grid, revision uint64) {
	data, err := s.frame(g, revision)
	if err != nil {
		logging.Logger().Error("encode frame", "component", "viewer", "err", err)
		return
	}
	s.hub.Broadcast(data)
}

// Start listens on addr and serves in the background. It returns the bound
// address, useful when addr has port 0.
func (s *Server) Start(addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("viewer listen on %s: %w", addr, err)
	}
	s.listener = ln
	s.httpSrv = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger().Error("viewer server stopped", "component", "viewer", "err", err)
		}
	}()
	logging.Logger().Info("viewer listening", "component", "viewer", "addr", ln.Addr().String())
	return ln.Addr(), nil
}

// Shutdown disconnects the viewers and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) frame(g *state.Grid, revision uint64) ([]byte, error) {
	return json.Marshal(Frame{
		Document: s.src.ID(),
		Revision: revision,
		Width:    g.Width(),
		Height:   g.Height(),
		Rows:     g.Rows(),
	})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	scale := 1
	if v := r.URL.Query().Get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > export.MaxScale {
			http.Error(w, "scale must be between 1 and "+strconv.Itoa(export.MaxScale), http.StatusBadRequest)
			return
		}
		scale = n
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = s.baseName()
	}

	g, _ := s.src.Snapshot()
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(name, "png")))
	if err := export.WritePNG(w, g, scale); err != nil {
		logging.Logger().Warn("image download failed", "component", "viewer", "err", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("websocket upgrade failed", "component", "viewer", "err", err)
		return
	}
	v := s.hub.add(conn)
	defer s.hub.remove(v)

	// viewers drop frames older than the newest they have seen, so a
	// broadcast racing this initial frame is harmless
	g, rev := s.src.Snapshot()
	data, err := s.frame(g, rev)
	if err != nil {
		logging.Logger().Error("encode frame", "component", "viewer", "err", err)
		return
	}
	s.hub.sendTo(v, data)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		// the view is read-only; incoming messages are discarded
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

const indexPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>PixelBoard viewer</title>
<style>body{font-family:sans-serif;background:#eee}canvas{image-rendering:pixelated;width:480px;height:480px;background:#fff}</style>
</head>
<body>
<canvas id="view" width="16" height="16"></canvas>
<p><a href="/image.png?scale=16">download</a> <span id="status">connecting</span></p>
<script>
const canvas = document.getElementById("view");
const ctx = canvas.getContext("2d");
const status = document.getElementById("status");
let latest = -1;
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (ev) => {
  const f = JSON.parse(ev.data);
  if (f.revision < latest) return;
  latest = f.revision;
  canvas.width = f.width;
  canvas.height = f.height;
  ctx.clearRect(0, 0, f.width, f.height);
  f.rows.forEach((row, r) => row.forEach((c, col) => {
    ctx.fillStyle = c;
    ctx.fillRect(col, r, 1, 1);
  }));
  status.textContent = "revision " + f.revision;
};
ws.onclose = () => { status.textContent = "disconnected"; };
</script>
</body>
</html>
`
