// Package testutil provides an in-process Gremlin server stub for exercising
// the client against scripted websocket responses.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/coingaming/gremlex/config"
	"github.com/coingaming/gremlex/protocol"
)

// Handler scripts the server side of one query: it receives the decoded
// request and a Conn for writing response frames.
type Handler func(conn *Conn, req protocol.Request)

// Conn wraps one server-side websocket connection
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// SendJSON writes v as one text frame
func (c *Conn) SendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.SendText(data)
}

// SendText writes one raw text frame
func (c *Conn) SendText(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// SendPong writes one pong control frame
func (c *Conn) SendPong() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PongMessage, nil, time.Now().Add(time.Second))
}

// SendResponse writes a standard response frame for the request id
func (c *Conn) SendResponse(requestID string, code int, message string, data any) error {
	frame := map[string]any{
		"requestId": requestID,
		"status": map[string]any{
			"code":       code,
			"message":    message,
			"attributes": map[string]any{},
		},
		"result": map[string]any{
			"data": data,
			"meta": map[string]any{},
		},
	}
	return c.SendJSON(frame)
}

// Server is a stub Gremlin server speaking just enough of the websocket
// protocol for client tests.
type Server struct {
	httpServer *httptest.Server
	upgrader   websocket.Upgrader
	handler    Handler
	mu         sync.Mutex
	conns      []*websocket.Conn
}

// NewServer starts a stub server that invokes handler for every request
// envelope received.
func NewServer(handler Handler) *Server {
	s := &Server{
		handler: handler,
		upgrader: websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin:       func(_ *http.Request) bool { return true },
		},
	}
	s.httpServer = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.conns = append(s.conns, ws)
	s.mu.Unlock()

	conn := &Conn{ws: ws}
	for {
		msgType, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		var req protocol.Request
		if err := json.Unmarshal(data, &req); err != nil {
			continue
		}
		if s.handler != nil {
			s.handler(conn, req)
		}
	}
}

// Config returns a client config pointing at the stub server
func (s *Server) Config() config.Config {
	host, port := s.hostPort()
	cfg := config.DefaultConfig(host)
	cfg.Port = port
	cfg.Path = "/"
	cfg.PoolSize = 1
	cfg.PingDelay = 0
	return cfg
}

func (s *Server) hostPort() (string, int) {
	addr := strings.TrimPrefix(s.httpServer.URL, "http://")
	parts := strings.Split(addr, ":")
	port, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		panic(fmt.Sprintf("testutil: unparseable server address %q", addr))
	}
	return strings.Join(parts[:len(parts)-1], ":"), port
}

// CloseClientConns force-closes every accepted websocket, simulating a
// server-side drop.
func (s *Server) CloseClientConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ws := range s.conns {
		_ = ws.Close()
	}
	s.conns = nil
}

// Close shuts the stub server down
func (s *Server) Close() {
	s.CloseClientConns()
	s.httpServer.Close()
}
