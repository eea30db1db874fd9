// Package client implements the connection layer of the gremlex client: a
// pool of long-lived workers, each owning one websocket to the Gremlin
// server, and the facade that routes queries to them.
package client

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/coingaming/gremlex/config"
	"github.com/coingaming/gremlex/errors"
	"github.com/coingaming/gremlex/pkg/retry"
	"github.com/coingaming/gremlex/pkg/tlsutil"
	"github.com/coingaming/gremlex/protocol"
	"github.com/coingaming/gremlex/traversal"
)

const (
	// writeWait bounds individual websocket writes
	writeWait = 10 * time.Second
	// frameBuffer sizes the channel between the read loop and the worker
	frameBuffer = 32
	// DefaultQueryTimeout applies when the caller does not set one
	DefaultQueryTimeout = 30 * time.Second
)

// reconnectBackoff paces reconnect attempts after a dropped connection
var reconnectBackoff = retry.Config{
	InitialDelay: time.Second,
	MaxDelay:     30 * time.Second,
	Multiplier:   2.0,
	AddJitter:    true,
}

// WorkerState is the lifecycle state of a connection worker
type WorkerState int32

// Worker lifecycle states
const (
	StateInit WorkerState = iota
	StateConnecting
	StateActive
	StatePassive
	StateReconnecting
	StateTerminated
)

// String returns the string representation of WorkerState
func (s WorkerState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StatePassive:
		return "passive"
	case StateReconnecting:
		return "reconnecting"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// frameEvent is one inbound event from the read loop: a frame or a read error
type frameEvent struct {
	frame protocol.Frame
	err   error
}

type queryResult struct {
	values []any
	err    error
}

type queryCommand struct {
	gremlin string
	timeout time.Duration
	reply   chan queryResult
}

// Worker owns exactly one websocket connection to the Gremlin server. It is
// an actor: a single goroutine runs the connection lifecycle, answers
// keep-alive traffic in active mode, and serves queries synchronously in
// passive mode. At most one query is in flight per worker at any time.
type Worker struct {
	id      int
	cfg     config.Config
	logger  *slog.Logger
	metrics *Metrics

	commands chan queryCommand
	shutdown chan struct{}
	done     chan struct{}

	state      atomic.Int32
	reconnects atomic.Int64

	// ready is closed on the first successful connect
	ready     chan struct{}
	readyOnce sync.Once

	// owned by the run goroutine
	conn             *websocket.Conn
	frames           chan frameEvent
	pendingRequestID string

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewWorker creates a worker for the given server config. The worker does
// not connect until Start is called.
func NewWorker(id int, cfg config.Config, logger *slog.Logger, metrics *Metrics) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Worker{
		id:       id,
		cfg:      cfg,
		logger:   logger.With("worker", id),
		metrics:  metrics,
		commands: make(chan queryCommand),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		ready:    make(chan struct{}),
	}
	w.state.Store(int32(StateInit))
	return w
}

// Start launches the worker's run loop. Safe to call once.
func (w *Worker) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		go w.run(ctx)
	})
}

// Stop shuts the worker down, sending a best-effort close frame, and waits
// up to timeout for the run loop to exit.
func (w *Worker) Stop(timeout time.Duration) error {
	w.stopOnce.Do(func() {
		close(w.shutdown)
	})
	select {
	case <-w.done:
		return nil
	case <-time.After(timeout):
		return errors.WrapTransient(errors.ErrConnectionTimeout, "Worker", "Stop", "wait for run loop")
	}
}

// State returns the current lifecycle state
func (w *Worker) State() WorkerState {
	return WorkerState(w.state.Load())
}

// Reconnects returns the number of reconnects performed since Start
func (w *Worker) Reconnects() int64 {
	return w.reconnects.Load()
}

// WaitReady blocks until the worker has connected at least once, or ctx is
// done.
func (w *Worker) WaitReady(ctx context.Context) error {
	select {
	case <-w.ready:
		return nil
	case <-w.done:
		return errors.WrapTransient(errors.ErrWorkerStopped, "Worker", "WaitReady", "wait for connection")
	case <-ctx.Done():
		return errors.WrapTransient(ctx.Err(), "Worker", "WaitReady", "wait for connection")
	}
}

// Query submits a query and blocks until the server's response is assembled,
// the timeout elapses, or the connection drops. q is a Gremlin-Groovy string
// or a rooted traversal. Fails immediately with CONNECTION_UNAVAILABLE when
// the worker has no websocket.
func (w *Worker) Query(q any, timeout time.Duration) ([]any, error) {
	gremlin, err := encodeQuery(q)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}

	switch w.State() {
	case StateInit, StateConnecting, StateReconnecting:
		return nil, errors.NewQueryError(errors.CodeConnectionUnavailable, "worker has no websocket connection")
	case StateTerminated:
		return nil, errors.WrapInvalid(errors.ErrWorkerStopped, "Worker", "Query", "submit query")
	}

	cmd := queryCommand{gremlin: gremlin, timeout: timeout, reply: make(chan queryResult, 1)}
	select {
	case w.commands <- cmd:
	case <-w.done:
		return nil, errors.WrapInvalid(errors.ErrWorkerStopped, "Worker", "Query", "submit query")
	}

	select {
	case res := <-cmd.reply:
		return res.values, res.err
	case <-w.done:
		return nil, errors.WrapTransient(errors.ErrWorkerStopped, "Worker", "Query", "await reply")
	}
}

// encodeQuery turns a query value into Gremlin-Groovy source
func encodeQuery(q any) (string, error) {
	switch v := q.(type) {
	case string:
		return v, nil
	case traversal.Traversal:
		return traversal.Encode(v)
	default:
		return "", errors.WrapInvalid(errors.ErrUnsupportedArg, "Worker", "Query",
			"encode query of unsupported type")
	}
}

func (w *Worker) setState(s WorkerState) {
	w.state.Store(int32(s))
}

// run is the worker's actor loop: connect, serve until the connection drops,
// back off, reconnect. Exits on shutdown or context cancellation.
func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	defer w.setState(StateTerminated)

	attempt := 0
	for {
		w.setState(StateConnecting)
		if err := w.connect(ctx); err != nil {
			w.setState(StateReconnecting)
			delay := reconnectBackoff.Delay(attempt)
			attempt++
			w.logger.Warn("connect failed", "error", err, "retry_in", delay)
			if !w.waitReconnect(ctx, delay) {
				return
			}
			continue
		}
		attempt = 0
		w.readyOnce.Do(func() { close(w.ready) })
		w.logger.Info("connected", "url", w.cfg.URL())

		w.setState(StateActive)
		shutdown := w.serve(ctx)
		w.closeConn(shutdown)
		if shutdown {
			return
		}

		w.reconnects.Add(1)
		if w.metrics != nil {
			w.metrics.reconnectsTotal.Inc()
		}
		w.setState(StateReconnecting)
		if !w.waitReconnect(ctx, reconnectBackoff.Delay(0)) {
			return
		}
	}
}

// waitReconnect sleeps for the backoff delay while failing any queries that
// arrive, since there is no websocket to serve them. Returns false when the
// worker should stop.
func (w *Worker) waitReconnect(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-w.shutdown:
			return false
		case cmd := <-w.commands:
			cmd.reply <- queryResult{err: errors.NewQueryError(errors.CodeConnectionUnavailable,
				"worker has no websocket connection")}
		case <-timer.C:
			return true
		}
	}
}

// connect dials the server and performs the HTTP upgrade with
// permessage-deflate requested, then hands the connection to a fresh read
// loop.
func (w *Worker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		Proxy:             http.ProxyFromEnvironment,
		HandshakeTimeout:  w.cfg.Opts.HandshakeTimeout.Std(),
		ReadBufferSize:    w.cfg.Opts.ReadBufferSize,
		WriteBufferSize:   w.cfg.Opts.WriteBufferSize,
		EnableCompression: true,
	}
	if w.cfg.Secure {
		tlsConfig, err := tlsutil.LoadClientTLSConfig(w.cfg.Opts.TLS)
		if err != nil {
			return err
		}
		dialer.TLSClientConfig = tlsConfig
	}

	conn, resp, err := dialer.DialContext(ctx, w.cfg.URL(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return errors.WrapTransient(err, "Worker", "connect", "websocket upgrade")
	}

	frames := make(chan frameEvent, frameBuffer)
	conn.SetPingHandler(func(payload string) error {
		// Answer server pings with a pong echoing the payload
		_ = conn.WriteControl(websocket.PongMessage, []byte(payload), time.Now().Add(writeWait))
		w.pushControl(frames, protocol.FramePing)
		return nil
	})
	conn.SetPongHandler(func(string) error {
		w.pushControl(frames, protocol.FramePong)
		return nil
	})

	w.conn = conn
	w.frames = frames
	go w.readLoop(conn, frames)
	return nil
}

// pushControl forwards a control frame to the actor without ever blocking
// the read loop; dropped control frames carry no data.
func (w *Worker) pushControl(frames chan<- frameEvent, kind protocol.FrameKind) {
	select {
	case frames <- frameEvent{frame: protocol.Frame{Kind: kind}}:
	default:
	}
}

// readLoop owns all reads on the connection and forwards frames to the
// actor. It exits when the connection errors or the worker shuts down.
func (w *Worker) readLoop(conn *websocket.Conn, frames chan<- frameEvent) {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			ev := frameEvent{err: err}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				ev.frame = protocol.Frame{Kind: protocol.FrameClose}
			}
			select {
			case frames <- ev:
			case <-w.shutdown:
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		select {
		case frames <- frameEvent{frame: protocol.Frame{Kind: protocol.FrameText, Data: data}}:
		case <-w.shutdown:
			return
		}
	}
}

// serve runs the active-mode loop: keep-alive pings, asynchronous frame
// handling, and query dispatch. Returns true when the worker should stop,
// false when the connection dropped and a reconnect is due.
func (w *Worker) serve(ctx context.Context) (stop bool) {
	var pingC <-chan time.Time
	if w.cfg.PingDelay > 0 {
		ticker := time.NewTicker(w.cfg.PingDelay.Std())
		defer ticker.Stop()
		pingC = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return true
		case <-w.shutdown:
			return true
		case <-pingC:
			if err := w.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				// A failed ping alone does not drop the connection; the
				// subsequent read error will.
				w.logger.Debug("keep-alive ping failed", "error", err)
			}
		case ev := <-w.frames:
			if ev.err != nil || ev.frame.Kind == protocol.FrameClose {
				w.logger.Warn("connection lost", "error", ev.err)
				return false
			}
			if ev.frame.Kind == protocol.FrameText {
				w.logger.Warn("discarding unsolicited text frame", "bytes", len(ev.frame.Data))
				if w.metrics != nil {
					w.metrics.framesDiscarded.Inc()
				}
			}
		case cmd := <-w.commands:
			if !w.handleQuery(cmd) {
				return false
			}
		}
	}
}

// handleQuery serves one query in passive mode: write the request frame,
// drain frames synchronously until the assembler reports a terminal outcome
// or the timeout elapses. Returns false when the connection dropped.
func (w *Worker) handleQuery(cmd queryCommand) (connOK bool) {
	w.setState(StatePassive)
	defer w.setState(StateActive)

	req := protocol.NewRequest(cmd.gremlin)
	payload, err := req.Marshal()
	if err != nil {
		cmd.reply <- queryResult{err: err}
		return true
	}

	w.pendingRequestID = req.RequestID
	defer func() { w.pendingRequestID = "" }()

	start := time.Now()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := w.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		cmd.reply <- queryResult{err: errors.WrapTransient(err, "Worker", "Query", "write request frame")}
		return false
	}

	asm := protocol.NewAssembler(req.RequestID, w.logger)
	deadline := time.NewTimer(cmd.timeout)
	defer deadline.Stop()

	for {
		batch, drainErr := w.nextBatch(deadline.C)
		if drainErr != nil {
			connOK = errors.Is(drainErr, errors.ErrQueryTimeout) || errors.Is(drainErr, errors.ErrWorkerStopped)
			cmd.reply <- queryResult{err: drainErr}
			w.observeQuery("error", start)
			return connOK
		}

		outcome, err := asm.ProcessBatch(batch)
		if err != nil {
			cmd.reply <- queryResult{err: err}
			w.observeQuery("error", start)
			return false
		}
		if outcome == nil {
			continue
		}
		if outcome.Err != nil {
			cmd.reply <- queryResult{err: outcome.Err}
			w.observeQuery("error", start)
		} else {
			cmd.reply <- queryResult{values: outcome.Values}
			w.observeQuery("ok", start)
		}
		return true
	}
}

// nextBatch blocks for the next frame event, then drains whatever else is
// immediately available so the assembler sees one batch per delivery.
func (w *Worker) nextBatch(timeoutC <-chan time.Time) ([]protocol.Frame, error) {
	var first frameEvent
	select {
	case first = <-w.frames:
	case <-timeoutC:
		return nil, errors.WrapTransient(errors.ErrQueryTimeout, "Worker", "Query", "drain response frames")
	case <-w.shutdown:
		return nil, errors.WrapTransient(errors.ErrWorkerStopped, "Worker", "Query", "drain response frames")
	}

	events := []frameEvent{first}
	for {
		select {
		case ev := <-w.frames:
			events = append(events, ev)
		default:
			batch := make([]protocol.Frame, 0, len(events))
			for _, ev := range events {
				if ev.err != nil && ev.frame.Kind != protocol.FrameClose {
					return nil, errors.WrapTransient(ev.err, "Worker", "Query", "read response frame")
				}
				batch = append(batch, ev.frame)
			}
			return batch, nil
		}
	}
}

func (w *Worker) observeQuery(status string, start time.Time) {
	if w.metrics == nil {
		return
	}
	w.metrics.queriesTotal.WithLabelValues(status).Inc()
	w.metrics.queryDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}

// closeConn sends a best-effort close frame on shutdown and tears down the
// websocket.
func (w *Worker) closeConn(sendClose bool) {
	if w.conn == nil {
		return
	}
	if sendClose {
		message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = w.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
	}
	_ = w.conn.Close()
	w.conn = nil
	w.frames = nil
}
