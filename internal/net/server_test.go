package net

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PixelBoard/internal/state"
)

const (
	white = state.Color(0xffffffff)
	red   = state.Color(0xff0000ff)
)

func newTestServer(t *testing.T) (*state.Document, *Server, *httptest.Server) {
	t.Helper()
	g, err := state.NewGrid(16, 16, white)
	require.NoError(t, err)
	doc := state.NewDocument(g, 0)
	srv := NewServer(doc, func() string { return "sunset" })
	doc.OnChange(srv.Publish)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Hub().Close()
		ts.Close()
	})
	return doc, srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var f Frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestViewerReceivesInitialFrame(t *testing.T) {
	doc, _, ts := newTestServer(t)
	conn := dial(t, ts)

	f := readFrame(t, conn)
	assert.Equal(t, doc.ID(), f.Document)
	assert.Equal(t, uint64(0), f.Revision)
	assert.Equal(t, 16, f.Width)
	assert.Equal(t, 16, f.Height)
	require.Len(t, f.Rows, 16)
	assert.Equal(t, white, f.Rows[3][4])
}

func TestViewerReceivesCommits(t *testing.T) {
	doc, srv, ts := newTestServer(t)
	conn := dial(t, ts)
	readFrame(t, conn)
	require.Eventually(t, func() bool { return srv.Hub().Len() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.True(t, doc.Commit(state.Patch{{Row: 3, Col: 4, Color: red}}))

	f := readFrame(t, conn)
	assert.Equal(t, uint64(1), f.Revision)
	assert.Equal(t, red, f.Rows[3][4])

	require.True(t, doc.Undo())
	f = readFrame(t, conn)
	assert.Equal(t, uint64(2), f.Revision)
	assert.Equal(t, white, f.Rows[3][4])
}

func TestViewerDisconnectLeavesHub(t *testing.T) {
	_, srv, ts := newTestServer(t)
	conn := dial(t, ts)
	readFrame(t, conn)
	require.Eventually(t, func() bool { return srv.Hub().Len() == 1 }, 5*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return srv.Hub().Len() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestImageDownload(t *testing.T) {
	doc, _, ts := newTestServer(t)
	require.True(t, doc.Commit(state.Patch{{Row: 0, Col: 0, Color: red}}))

	resp, err := http.Get(ts.URL + "/image.png?scale=2")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="sunset.png"`, resp.Header.Get("Content-Disposition"))

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
	assert.Equal(t, red, state.FromColor(img.At(1, 1)))
	assert.Equal(t, white, state.FromColor(img.At(2, 2)))
}

func TestImageDownloadName(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/image.png?name=my%20art.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, `attachment; filename="my art.png"`, resp.Header.Get("Content-Disposition"))
}

func TestImageDownloadRejectsBadScale(t *testing.T) {
	_, _, ts := newTestServer(t)

	for _, scale := range []string{"0", "-1", "abc", "1000"} {
		resp, err := http.Get(ts.URL + "/image.png?scale=" + scale)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, scale)
	}
}

func TestIndexPage(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp, err = http.Get(ts.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFrameJSON(t *testing.T) {
	g, err := state.NewGrid(2, 1, red)
	require.NoError(t, err)
	srv := NewServer(state.NewDocument(g, 0), nil)

	data, err := srv.frame(g, 7)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(7), raw["revision"])
	assert.Equal(t, []any{[]any{"#ff0000ff", "#ff0000ff"}}, raw["rows"])
}

func TestShareLink(t *testing.T) {
	assert.Equal(t, "http://192.168.1.5:8888/", ShareLink("192.168.1.5:8888"))
	assert.True(t, strings.HasSuffix(ShareLink(":8888"), ":8888/"))
}
