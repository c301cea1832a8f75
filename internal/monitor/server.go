// Package monitor streams benchmark progress events to websocket clients, for
// the demo UI's live view. It is off unless a listen address is configured;
// the runner publishes to it only at scenario boundaries, never inside a
// timed region.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sdlp-org/sdlp-sub001/internal/logging"
	"github.com/sdlp-org/sdlp-sub001/internal/runner"
)

const pingInterval = 30 * time.Second

type Server struct {
	upgrader websocket.Upgrader
	httpSrv  *http.Server
	logger   *logging.Logger
	clients  map[*websocket.Conn]*clientConn
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	mu       sync.RWMutex
}

type clientConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *clientConn) writeMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteMessage(messageType, data)
}

func NewServer() *Server {
	s := &Server{
		logger:  logging.NewLogger("monitor"),
		clients: make(map[*websocket.Conn]*clientConn),
		stopCh:  make(chan struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// Local monitoring endpoint; the demo UI connects from file:// origins.
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	s.startPingLoop()
	return s
}

// Start listens on addr and serves /ws and /healthz until Close. Bind
// failures surface here, before any benchmark work begins.
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	s.httpSrv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("monitor server stopped", logging.Field{Key: "error", Value: err})
		}
	}()

	s.logger.Info("monitor listening", logging.Field{Key: "addr", Value: ln.Addr().String()})
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", logging.Field{Key: "error", Value: err})
		return
	}
	defer conn.Close()

	// Clients only read; limit inbound frames to disconnect detection.
	conn.SetReadLimit(4096)

	client := &clientConn{conn: conn}
	s.mu.Lock()
	s.clients[conn] = client
	s.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.removeClient(conn)
}

// Publish implements runner.ProgressSink: the event is fanned out to every
// connected client as a JSON text frame.
func (s *Server) Publish(ev runner.ProgressEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		s.logger.Warn("progress event marshal failed", logging.Field{Key: "error", Value: err})
		return
	}

	s.mu.RLock()
	clientList := make([]*clientConn, 0, len(s.clients))
	for _, c := range s.clients {
		clientList = append(clientList, c)
	}
	s.mu.RUnlock()

	for _, client := range clientList {
		if err := client.writeMessage(websocket.TextMessage, data); err != nil {
			s.removeClient(client.conn)
			client.conn.Close()
		}
	}
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
}

func (s *Server) startPingLoop() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.pingClients()
			}
		}
	}()
}

func (s *Server) pingClients() {
	s.mu.RLock()
	clientList := make([]*clientConn, 0, len(s.clients))
	for _, c := range s.clients {
		clientList = append(clientList, c)
	}
	s.mu.RUnlock()

	for _, client := range clientList {
		if err := client.writeMessage(websocket.PingMessage, nil); err != nil {
			s.removeClient(client.conn)
			client.conn.Close()
		}
	}
}

func (s *Server) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.httpSrv.Shutdown(ctx)
		}
	})
	s.wg.Wait()
}
