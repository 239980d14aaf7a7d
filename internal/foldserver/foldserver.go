// Package foldserver exposes the propagator over a WebSocket, so a client
// (an editor plugin, a shader hot-reload tool) can stream expression
// source and get back folded results live instead of shelling out to the
// CLI per expression. Follows a familiar upgrade-and-serve pattern
// (Upgrader + per-connection read goroutine + a Sessions map), narrowed
// from a general bidirectional byte-stream relay to one request/response
// JSON protocol, and uses google/uuid for per-connection session IDs.
package foldserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"shadereval/internal/builtins"
	"shadereval/internal/literal"
	"shadereval/internal/parser"
	"shadereval/internal/propagate"
	"shadereval/internal/scope"
)

// Request is one fold request sent by a client over the socket.
type Request struct {
	ID     string `json:"id"`
	Source string `json:"source"`
}

// Response reports either a folded constant's surface type and printed
// form, a residual (non-const) expression's printed form, or an error.
type Response struct {
	ID       string `json:"id"`
	IsConst  bool   `json:"isConst,omitempty"`
	Type     string `json:"type,omitempty"`
	Result   string `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Session is one connected client: its own scoped constant environment
// persists across requests on the same connection. Requests only fold
// expressions; no request declares a constant into that scope.
type Session struct {
	ID     string
	conn   *websocket.Conn
	scope  *scope.Stack
	mu     sync.Mutex
	closed bool
}

// Server accepts WebSocket connections and folds whatever expression
// source each one sends, using the same builtin function table for every
// session.
type Server struct {
	addr     string
	fns      builtins.Registry
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*Session
}

// New builds a Server bound to addr ("host:port"); it does not start
// listening until Serve is called.
func New(addr string) *Server {
	return &Server{
		addr: addr,
		fns:  builtins.BuiltinFunctions(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*Session),
	}
}

// Serve blocks, running the HTTP server that upgrades connections to
// WebSocket sessions on path "/fold".
func (s *Server) Serve() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/fold", s.handleUpgrade)
	log.Printf("foldserver: listening on %s/fold", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	sess := &Session{
		ID:    uuid.NewString(),
		conn:  conn,
		scope: scope.New(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	go s.serveSession(sess)
}

func (s *Server) serveSession(sess *Session) {
	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()

		sess.mu.Lock()
		sess.closed = true
		sess.mu.Unlock()
		sess.conn.Close()
	}()

	for {
		_, payload, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}

		var req Request
		if err := json.Unmarshal(payload, &req); err != nil {
			s.send(sess, Response{Error: fmt.Sprintf("invalid request: %v", err)})
			continue
		}

		resp := s.fold(sess, req)
		if err := s.send(sess, resp); err != nil {
			return
		}
	}
}

func (s *Server) fold(sess *Session, req Request) Response {
	expr, err := parser.Parse(req.Source)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}

	result, err := propagate.Propagate(expr, sess.scope, s.fns)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	if !result.IsConst {
		return Response{ID: req.ID, IsConst: false, Result: literal.Print(result.Expr)}
	}

	base, ok := result.Value.AsBase()
	if !ok {
		return Response{ID: req.ID, IsConst: true, Result: literal.TypeSpecifier(result.Value)}
	}
	return Response{
		ID:      req.ID,
		IsConst: true,
		Type:    literal.TypeSpecifier(result.Value),
		Result:  literal.Print(literal.ToAST(base)),
	}
}

func (s *Server) send(sess *Session, resp Response) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return fmt.Errorf("session %s is closed", sess.ID)
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return sess.conn.WriteMessage(websocket.TextMessage, payload)
}

// SessionCount reports how many clients are currently connected.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
