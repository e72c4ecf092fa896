// Package server exposes the rules engine to remote players over WebSocket.
// It owns no game logic: every rule decision is delegated to the engine and
// every engine failure maps to a single error message for the client.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Server accepts WebSocket clients and routes their messages to sessions.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	manager     *Manager
	logger      *log.Logger
	mu          sync.RWMutex
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	ctx         context.Context
	cancel      context.CancelFunc
	httpServer  *http.Server
}

// NewServer creates a server bound to the given address.
func NewServer(addr string, manager *Manager, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Hotseat-over-LAN is the target deployment; tighten when
				// exposing publicly.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		manager:     manager,
		logger:      logger.WithPrefix("server"),
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start runs the listener until Stop or a listen error.
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	s.httpServer = &http.Server{Addr: s.addr, Handler: mux}

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down and closes every connection.
func (s *Server) Stop(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// run tracks connection lifecycle.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s, s.logger)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

// broadcastState pushes each seated client of a game its own view. Views
// differ per seat (own hand, private log), so this is N snapshots, not one.
func (s *Server) broadcastState(gameID string) {
	session, err := s.manager.Get(gameID)
	if err != nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn := range s.connections {
		if conn.GameID() != gameID {
			continue
		}
		snap, err := session.Snapshot(conn.SeatToken(), s.manager.Now())
		if err != nil {
			continue
		}
		msg, err := NewMessage(TypeState, snap)
		if err != nil {
			s.logger.Error("Failed to encode state", "error", err)
			continue
		}
		if err := conn.Send(msg); err != nil {
			s.logger.Error("Failed to send state", "error", err, "game", gameID)
		}
	}
}

// handleMessage dispatches one client frame. Rule violations come back as
// error messages on the same connection; successful mutations fan the new
// state out to the whole table.
func (s *Server) handleMessage(c *Connection, msg *Message) {
	switch msg.Type {
	case TypeCreate:
		var data CreateData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.SendError("Malformed create request.")
			return
		}
		session, seat, err := s.manager.Create(data.Name, data.Seed)
		if err != nil {
			c.SendError(err.Error())
			return
		}
		c.Bind(session.ID, seat.Token)
		c.sendPayload(TypeCreated, CreatedData{
			GameID:    session.ID,
			JoinCode:  session.JoinCode,
			SeatToken: seat.Token,
			PlayerID:  seat.PlayerID,
		})

	case TypeJoin:
		var data JoinData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.SendError("Malformed join request.")
			return
		}
		session, seat, err := s.manager.Join(data.JoinCode, data.Name)
		if err != nil {
			c.SendError(err.Error())
			return
		}
		c.Bind(session.ID, seat.Token)
		c.sendPayload(TypeJoined, JoinedData{
			GameID:    session.ID,
			SeatToken: seat.Token,
			PlayerID:  seat.PlayerID,
		})
		s.broadcastState(session.ID)

	case TypeBegin:
		var data BeginData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.SendError("Malformed begin request.")
			return
		}
		s.withSession(c, data.GameID, func(session *Session) error {
			return session.Begin(data.SeatToken, s.manager.Now())
		})

	case TypeStartTurn:
		var data StartTurnData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.SendError("Malformed start_turn request.")
			return
		}
		s.withSession(c, data.GameID, func(session *Session) error {
			return session.StartTurn(data.SeatToken, s.manager.Now())
		})

	case TypePlay:
		var data PlayData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.SendError("Malformed play request.")
			return
		}
		s.withSession(c, data.GameID, func(session *Session) error {
			return session.Play(data.SeatToken, data, s.manager.Now())
		})

	case TypeNextRound:
		var data NextRoundData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.SendError("Malformed next_round request.")
			return
		}
		s.withSession(c, data.GameID, func(session *Session) error {
			return session.NextRound(data.SeatToken, s.manager.Now())
		})

	case TypeGetState:
		var data GetStateData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.SendError("Malformed get_state request.")
			return
		}
		session, err := s.manager.Get(data.GameID)
		if err != nil {
			c.SendError(err.Error())
			return
		}
		snap, err := session.Snapshot(data.SeatToken, s.manager.Now())
		if err != nil {
			c.SendError(err.Error())
			return
		}
		c.sendPayload(TypeState, snap)

	default:
		c.SendError(fmt.Sprintf("Unknown message type %q.", msg.Type))
	}
}

// withSession runs a mutating session call and broadcasts the new state on
// success.
func (s *Server) withSession(c *Connection, gameID string, fn func(*Session) error) {
	session, err := s.manager.Get(gameID)
	if err != nil {
		c.SendError(err.Error())
		return
	}
	if err := fn(session); err != nil {
		c.SendError(err.Error())
		return
	}
	s.broadcastState(gameID)
}
