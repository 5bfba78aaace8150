package server

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/wfunc/drawguess/config"
	"github.com/wfunc/drawguess/game"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/monitor"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/session"
)

const disconnectTimeout = 5 * time.Second

type GameServer struct {
	cfg            config.ServerConfig
	upgrader       websocket.Upgrader
	loop           *game.Loop
	sessionManager *session.Manager
	monitor        *monitor.Monitor
	httpServer     *http.Server
	shutdownChan   chan struct{}
	shutdownOnce   sync.Once
}

func NewGameServer(cfg config.ServerConfig, loop *game.Loop, sessions *session.Manager, mon *monitor.Monitor) *GameServer {
	s := &GameServer{
		cfg:            cfg,
		loop:           loop,
		sessionManager: sessions,
		monitor:        mon,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}
	s.httpServer = &http.Server{
		Addr:    cfg.HTTPAddress,
		Handler: s.Handler(),
	}
	return s
}

// Handler routes /ws, /metrics, /healthz and /debug/vars.
func (s *GameServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/metrics", s.monitor.Handler())
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *GameServer) Start() error {
	s.monitor.PublishExpvar()
	logger.Log.Infof("Game server listening on %s", s.cfg.HTTPAddress)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and closes the open ones. Calling it
// again is a no-op apart from the HTTP server shutdown.
func (s *GameServer) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() { close(s.shutdownChan) })
	err := s.httpServer.Shutdown(ctx)
	s.sessionManager.CloseAll()
	return err
}

func (s *GameServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      "ok",
		"connections": s.sessionManager.Count(),
	})
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) limiter() *rate.Limiter {
	if s.cfg.EventRate <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := s.cfg.EventBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(s.cfg.EventRate), burst)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn, s.cfg.ReadLimit)
	sess := session.NewSession(uuid.New().String(), wsConn, s.cfg.SendBuffer)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()

	if s.cfg.HeartbeatInterval > 0 {
		wsConn.SetHeartbeat(s.cfg.HeartbeatInterval)
	}
	go sess.WritePump(s.cfg.HeartbeatInterval)

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s, idle %s",
			wsConn.RemoteAddr(), sess.GetID(), time.Since(sess.GetLastActive()).Round(time.Millisecond))
		ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		if err := s.loop.Disconnect(ctx, sess.GetID()); err != nil {
			logger.Log.Warnf("Disconnect of session %s not applied: %v", sess.GetID(), err)
		}
		s.sessionManager.Remove(sess.GetID())
		sess.Close()
		s.monitor.DecOnlinePlayers()
	}()

	limiter := s.limiter()
	for {
		select {
		case <-s.shutdownChan:
			return
		default:
		}

		packet, err := wsConn.ReadPacket()
		if err != nil {
			return
		}
		sess.Touch()

		if !limiter.Allow() {
			s.monitor.IncDroppedEvents()
			logger.Log.Debugf("Session %s exceeded event rate, dropped %s", sess.GetID(), packet.Event)
			continue
		}

		ev := game.Event{ConnectionID: sess.GetID(), Name: packet.Event, Data: packet.Data}
		if err := s.loop.Submit(context.Background(), ev); err != nil {
			logger.Log.Errorf("Session %s event %s not applied: %v", sess.GetID(), packet.Event, err)
			return
		}
	}
}
