package session

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/wfunc/drawguess/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	mu      sync.Mutex
	written [][]byte
	pings   int
	closed  bool
	wrote   chan struct{}
}

func newMockConnection() *MockConnection {
	return &MockConnection{wrote: make(chan struct{}, 16)}
}

func (m *MockConnection) Write(data []byte) error {
	m.mu.Lock()
	m.written = append(m.written, data)
	m.mu.Unlock()
	m.wrote <- struct{}{}
	return nil
}

func (m *MockConnection) Ping() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pings++
	return nil
}

func (m *MockConnection) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func (m *MockConnection) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager should not return nil")
	}
	if manager.sessions == nil {
		t.Fatal("NewManager should initialize the sessions map")
	}
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sessionID := "test_session_1"
	sess := NewSession(sessionID, newMockConnection(), 4)

	manager.Add(sess)
	if manager.Count() != 1 {
		t.Fatalf("Expected session count to be 1, got %d", manager.Count())
	}

	retrievedSess, exists := manager.Get(sessionID)
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if retrievedSess != sess {
		t.Fatal("Get should return the same session instance")
	}

	manager.Remove(sessionID)
	if manager.Count() != 0 {
		t.Fatalf("Expected session count to be 0 after removal, got %d", manager.Count())
	}

	if _, exists = manager.Get(sessionID); exists {
		t.Fatal("Get should not find the removed session")
	}
}

func TestSession_SendDropsWhenFull(t *testing.T) {
	sess := NewSession("full", newMockConnection(), 1)

	if err := sess.Send([]byte("one")); err != nil {
		t.Fatalf("first send should be queued, got %v", err)
	}
	if err := sess.Send([]byte("two")); err != ErrSendBufferFull {
		t.Fatalf("Expected ErrSendBufferFull, got %v", err)
	}
}

func TestSession_SendAfterClose(t *testing.T) {
	sess := NewSession("closed", newMockConnection(), 1)
	sess.Close()
	sess.Close()

	if err := sess.Send([]byte("late")); err != ErrSessionClosed {
		t.Fatalf("Expected ErrSessionClosed, got %v", err)
	}
}

func TestSession_WritePump(t *testing.T) {
	conn := newMockConnection()
	sess := NewSession("pump", conn, 4)

	done := make(chan struct{})
	go func() {
		sess.WritePump(0)
		close(done)
	}()

	sess.Send([]byte("hello"))
	select {
	case <-conn.wrote:
	case <-time.After(time.Second):
		t.Fatal("frame was not written")
	}

	sess.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WritePump did not stop after Close")
	}

	if !conn.isClosed() {
		t.Error("connection should be closed when the pump exits")
	}
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if len(conn.written) != 1 || string(conn.written[0]) != "hello" {
		t.Errorf("unexpected frames written: %q", conn.written)
	}
}
