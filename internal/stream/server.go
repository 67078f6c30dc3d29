// Package stream broadcasts tick snapshots to websocket viewers so a
// browser or another process can watch a run live. Viewers are
// read-only; nothing they send reaches the simulation.
package stream

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/avelent/mingle/internal/agent"
)

// AgentFrame is one agent's state inside a Frame.
type AgentFrame struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Greeted bool    `json:"greeted"`
}

// Frame is the per-tick snapshot sent to every viewer.
type Frame struct {
	Tick   int          `json:"tick"`
	Greets int          `json:"greets"`
	Agents []AgentFrame `json:"agents"`
}

// Server fans tick frames out to connected websocket viewers. It
// implements sim.Observer; attach it to a model before driving the run.
type Server struct {
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu      sync.Mutex
	viewers map[*websocket.Conn]struct{}
	greets  int
}

func NewServer(log *slog.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     log,
		viewers: make(map[*websocket.Conn]struct{}),
	}
}

// HandleViewer upgrades the connection and registers it for frames
// until it closes.
func (s *Server) HandleViewer(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "err", err)
		return
	}

	s.mu.Lock()
	s.viewers[conn] = struct{}{}
	n := len(s.viewers)
	s.mu.Unlock()
	s.log.Info("viewer connected", "remote", conn.RemoteAddr().String(), "viewers", n)

	go s.drain(conn)
}

// drain discards inbound messages and unregisters the viewer when the
// connection dies.
func (s *Server) drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.mu.Lock()
	delete(s.viewers, conn)
	s.mu.Unlock()
	conn.Close()
	s.log.Info("viewer disconnected", "remote", conn.RemoteAddr().String())
}

// OnGreet implements sim.Observer.
func (s *Server) OnGreet(tick int, from, to agent.Agent) {
	s.mu.Lock()
	s.greets++
	s.mu.Unlock()
}

// OnTick implements sim.Observer: builds a frame and broadcasts it,
// dropping viewers whose connection fails.
func (s *Server) OnTick(tick int, agents []agent.Agent) {
	frame := Frame{
		Tick:   tick,
		Agents: make([]AgentFrame, len(agents)),
	}
	for i, a := range agents {
		p := a.Position()
		frame.Agents[i] = AgentFrame{
			ID:      string(a.ID()),
			X:       p[0],
			Y:       p[1],
			Greeted: a.Greeted(),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	frame.Greets = s.greets

	for conn := range s.viewers {
		if err := conn.WriteJSON(frame); err != nil {
			s.log.Warn("dropping viewer", "remote", conn.RemoteAddr().String(), "err", err)
			delete(s.viewers, conn)
			conn.Close()
		}
	}
}

// ListenAndServe serves the viewer endpoint at /ws.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleViewer)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.log.Info("stream server listening", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
