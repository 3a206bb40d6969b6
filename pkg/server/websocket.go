package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lborunda/rhinoFOAM/pkg/generator"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 16 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The service binds to localhost for design-tool integration.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsClient is one websocket connection. Reads and writes each run on
// their own goroutine; send carries frames to the writer, done is
// closed when the writer exits so queued sends never block forever.
type wsClient struct {
	server *Server
	conn   *websocket.Conn
	send   chan wsMessage
	done   chan struct{}
}

// queue hands a frame to the writer. It reports false once the writer
// has exited, so producers stop instead of blocking on a dead pump.
func (c *wsClient) queue(msg wsMessage) bool {
	select {
	case c.send <- msg:
		return true
	case <-c.done:
		return false
	}
}

// wsMessage is a server-to-client frame. Exactly one payload field is
// set per frame.
type wsMessage struct {
	// Type is "line", "report" or "error".
	Type string `json:"type"`

	// Line carries one instruction line with its emission index.
	Index int    `json:"index,omitempty"`
	Line  string `json:"line,omitempty"`

	// Report closes a run: the summary counts plus total line count.
	Report *generator.Report `json:"report,omitempty"`

	Error string `json:"error,omitempty"`
}

// handleWebSocket upgrades the connection and streams generation runs.
// Each inbound frame is a GenerateRequest; the response is one "line"
// frame per instruction followed by a "report" frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &wsClient{
		server: s,
		conn:   conn,
		send:   make(chan wsMessage, 256),
		done:   make(chan struct{}),
	}
	s.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("websocket client connected")

	go client.writePump()
	go client.readPump()
}

// readPump consumes generation requests until the connection drops.
func (c *wsClient) readPump() {
	defer func() {
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.server.log.Warn().Err(err).Msg("websocket read error")
			}
			return
		}
		c.runGeneration(data)
	}
}

// runGeneration executes one request and queues the streamed response.
func (c *wsClient) runGeneration(data []byte) {
	var gr GenerateRequest
	if err := json.Unmarshal(data, &gr); err != nil {
		c.queue(wsMessage{Type: "error", Error: "invalid request: " + err.Error()})
		return
	}

	geo, prof, opts, err := gr.decode()
	if err != nil {
		c.server.runs.WithLabelValues("unknown", "rejected").Inc()
		c.queue(wsMessage{Type: "error", Error: err.Error()})
		return
	}

	bundle, err := generator.Generate(geo, prof, opts)
	if err != nil {
		c.server.runs.WithLabelValues(string(prof.Mode), "failed").Inc()
		c.queue(wsMessage{Type: "error", Error: err.Error()})
		return
	}

	c.server.runs.WithLabelValues(string(prof.Mode), "ok").Inc()
	c.server.lines.Add(float64(len(bundle.Instructions)))

	for i, line := range bundle.Instructions {
		if !c.queue(wsMessage{Type: "line", Index: i, Line: line}) {
			return
		}
	}
	report := bundle.Report
	c.queue(wsMessage{Type: "report", Report: &report})
}

// writePump drains the send channel onto the connection and keeps the
// connection alive with pings. Closing done on exit releases any
// producer blocked in queue, whichever branch failed.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
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
