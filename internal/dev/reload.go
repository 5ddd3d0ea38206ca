package dev

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ReloadPath is where the live reload client connects.
const ReloadPath = "/_einblatt/reload"

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	ReloadTypeFull  ReloadMessageType = "reload"
	ReloadTypeCSS   ReloadMessageType = "css"
	ReloadTypeError ReloadMessageType = "error"
	ReloadTypeClear ReloadMessageType = "clear"
)

// ReloadMessage is sent to browsers via WebSocket. File is the URL path of
// the changed stylesheet for css messages; Error is the overlay text for
// error messages.
type ReloadMessage struct {
	Type  ReloadMessageType `json:"type"`
	Error string            `json:"error,omitempty"`
	File  string            `json:"file,omitempty"`
}

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// sendBuffer is how many messages a client may fall behind before it
	// is dropped.
	sendBuffer = 8

	// maxClientMessage bounds what the browser may send. The client never
	// sends anything but control frames.
	maxClientMessage = 512
)

// reloadClient is one connected browser. Only its write pump writes to
// conn; closing send stops the pump.
type reloadClient struct {
	conn *websocket.Conn
	send chan []byte
}

// ReloadServer fans reload messages out to connected browsers.
type ReloadServer struct {
	mu       sync.Mutex
	clients  map[*reloadClient]struct{}
	closed   bool
	onSend   func(ReloadMessageType)
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewReloadServer creates a reload server with no clients.
func NewReloadServer(logger *slog.Logger) *ReloadServer {
	if logger == nil {
		logger = slog.Default().With("component", "reload")
	}
	return &ReloadServer{
		clients: make(map[*reloadClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dev server is local; pages may be opened under any host name.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// HandleWebSocket upgrades the request and keeps the client registered
// until it disconnects or the server closes.
func (r *ReloadServer) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Warn("upgrade failed", "code", "E405", "error", err)
		return
	}

	c := &reloadClient{conn: conn, send: make(chan []byte, sendBuffer)}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		conn.Close()
		return
	}
	r.clients[c] = struct{}{}
	r.mu.Unlock()
	r.logger.Debug("client connected", "remote", req.RemoteAddr)

	go c.writePump()
	c.readPump()
	r.remove(c)
	r.logger.Debug("client disconnected", "remote", req.RemoteAddr)
}

// readPump consumes frames so pongs and the close handshake are processed.
// It returns when the connection fails or goes quiet for pongWait.
func (c *reloadClient) readPump() {
	c.conn.SetReadLimit(maxClientMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump delivers queued messages and pings until send is closed.
func (c *reloadClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closed"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// NotifyReload asks every client to reload the page.
func (r *ReloadServer) NotifyReload() {
	r.broadcast(ReloadMessage{Type: ReloadTypeFull})
}

// NotifyCSS asks every client to refetch the stylesheet at file, a URL path.
func (r *ReloadServer) NotifyCSS(file string) {
	r.broadcast(ReloadMessage{Type: ReloadTypeCSS, File: file})
}

// NotifyError shows msg in an overlay on every client.
func (r *ReloadServer) NotifyError(msg string) {
	r.broadcast(ReloadMessage{Type: ReloadTypeError, Error: msg})
}

// ClearError removes the error overlay on every client.
func (r *ReloadServer) ClearError() {
	r.broadcast(ReloadMessage{Type: ReloadTypeClear})
}

// broadcast queues msg for every client. A client whose queue is full is
// dropped rather than blocking the others.
func (r *ReloadServer) broadcast(msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	r.mu.Lock()
	for c := range r.clients {
		select {
		case c.send <- data:
		default:
			r.logger.Debug("dropping slow client", "remote", c.conn.RemoteAddr())
			delete(r.clients, c)
			close(c.send)
		}
	}
	n, onSend := len(r.clients), r.onSend
	r.mu.Unlock()

	r.logger.Debug("broadcast", "type", msg.Type, "clients", n)
	if onSend != nil {
		onSend(msg.Type)
	}
}

func (r *ReloadServer) remove(c *reloadClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c]; ok {
		delete(r.clients, c)
		close(c.send)
	}
}

// OnSend registers fn to run after every broadcast.
func (r *ReloadServer) OnSend(fn func(ReloadMessageType)) {
	r.mu.Lock()
	r.onSend = fn
	r.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (r *ReloadServer) ClientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Close disconnects every client and refuses new ones.
func (r *ReloadServer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for c := range r.clients {
		delete(r.clients, c)
		close(c.send)
	}
}

// InjectClient inserts the live reload script before </body>, or before
// </html>, or at the end of html.
func InjectClient(html string) string {
	for _, tag := range []string{"</body>", "</html>"} {
		if idx := strings.LastIndex(html, tag); idx != -1 {
			return html[:idx] + DevClientScript + html[idx:]
		}
	}
	return html + DevClientScript
}

// DevClientScript is the live reload client injected into served pages.
// After a lost connection it reconnects with backoff and reloads the page
// once the server is back, since the server may have restarted with new
// content.
const DevClientScript = `
<script>
(function () {
  'use strict';
  var overlayID = 'einblatt-error-overlay';
  var delay = 500, maxDelay = 10000, seen = false;

  function connect() {
    var scheme = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(scheme + '//' + location.host + '` + ReloadPath + `');
    ws.onopen = function () {
      if (seen) { location.reload(); return; }
      seen = true;
      delay = 500;
    };
    ws.onmessage = function (e) {
      var msg;
      try { msg = JSON.parse(e.data); } catch (_) { return; }
      if (msg.type === 'reload') location.reload();
      else if (msg.type === 'css') swapStyles(msg.file);
      else if (msg.type === 'error') showError(msg.error);
      else if (msg.type === 'clear') clearError();
    };
    ws.onclose = function () {
      setTimeout(connect, delay);
      delay = Math.min(delay * 2, maxDelay);
    };
  }

  function swapStyles(file) {
    document.querySelectorAll('link[rel="stylesheet"]').forEach(function (link) {
      var url = new URL(link.href);
      if (file && url.pathname !== file) return;
      url.searchParams.set('v', Date.now());
      link.href = url.toString();
    });
  }

  function showError(text) {
    clearError();
    var pre = document.createElement('pre');
    pre.id = overlayID;
    pre.style.cssText = 'position:fixed;inset:0;margin:0;padding:24px;overflow:auto;' +
      'background:rgba(20,20,20,.95);color:#f87171;font:13px/1.5 monospace;white-space:pre-wrap;z-index:2147483647';
    pre.textContent = text;
    document.body.appendChild(pre);
  }

  function clearError() {
    var el = document.getElementById(overlayID);
    if (el) el.remove();
  }

  connect();
})();
</script>
`
