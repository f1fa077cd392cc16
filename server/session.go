package server

import (
	"net"
	"sync"
)

// Session pairs an authenticated username with its connection. Outbound
// records go through a buffered queue drained by a dedicated writer
// goroutine, so one slow peer never stalls a fan-out to the others.
type Session struct {
	ID       string
	Username string

	conn net.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newSession(id, username string, conn net.Conn, queue int) *Session {
	return &Session{
		ID:       id,
		Username: username,
		conn:     conn,
		send:     make(chan []byte, queue),
		done:     make(chan struct{}),
	}
}

// enqueue hands a framed record to the session's writer. It never blocks: a
// session that is closed or too far behind reports failure and is treated
// like any other dead sink.
func (s *Session) enqueue(payload []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.send <- payload:
		return true
	case <-s.done:
		return false
	default:
		return false
	}
}

func (s *Session) close() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}
