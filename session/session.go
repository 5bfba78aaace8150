// session/session.go
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/network"
)

var (
	ErrSendBufferFull = errors.New("send buffer full")
	ErrSessionClosed  = errors.New("session closed")
)

// Session is one websocket connection. Outbound frames are queued and
// written by WritePump so that senders never block on the network.
type Session struct {
	ID         string
	Conn       network.Connection
	CreatedAt  time.Time
	LastActive time.Time

	outbox    chan []byte
	done      chan struct{}
	closeOnce sync.Once
	mutex     sync.RWMutex
}

func NewSession(id string, conn network.Connection, bufferSize int) *Session {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
		outbox:     make(chan []byte, bufferSize),
		done:       make(chan struct{}),
	}
}

// Send queues an encoded frame. It never blocks: a full queue drops the frame.
func (s *Session) Send(frame []byte) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.outbox <- frame:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Touch records inbound activity.
func (s *Session) Touch() {
	s.mutex.Lock()
	s.LastActive = time.Now()
	s.mutex.Unlock()
}

func (s *Session) GetLastActive() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.LastActive
}

func (s *Session) GetID() string {
	return s.ID
}

// WritePump drains the outbox and pings every heartbeat interval until the
// session is closed or a write fails. It closes the connection on exit.
func (s *Session) WritePump(heartbeat time.Duration) {
	var ping <-chan time.Time
	if heartbeat > 0 {
		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()
		ping = ticker.C
	}
	defer s.Conn.Close()

	for {
		select {
		case frame := <-s.outbox:
			if err := s.Conn.Write(frame); err != nil {
				logger.Log.Debugf("Session %s write failed: %v", s.ID, err)
				return
			}
		case <-ping:
			if err := s.Conn.Ping(); err != nil {
				logger.Log.Debugf("Session %s ping failed: %v", s.ID, err)
				return
			}
		case <-s.done:
			return
		}
	}
}

// Close stops the write pump. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// Session管理器
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

// CloseAll stops every session's write pump, which closes its connection.
func (m *Manager) CloseAll() {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, s := range m.sessions {
		s.Close()
	}
}
