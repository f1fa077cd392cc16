package server

import (
	"bufio"
	"context"
	"io"
	"net"
	"time"

	"github.com/google/uuid"

	"chatrelay/models"
	"chatrelay/protocol"
)

// handleConnection owns one connection end-to-end: handshake, registration,
// read loop, cleanup. It runs in its own goroutine; nothing it does can take
// down the accept loop or another connection.
func (s *Server) handleConnection(conn net.Conn) {
	connID := uuid.NewString()
	logger := s.logger.With("conn_id", connID, "remote", conn.RemoteAddr().String())
	logger.Info("client connected")

	reader := bufio.NewReader(conn)

	// The handshake deadline is opt-in; by default a client may take as
	// long as it likes.
	if s.config.HandshakeTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.config.HandshakeTimeout))
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		logger.Info("closed before handshake", "error", err)
		conn.Close()
		return
	}
	if s.config.HandshakeTimeout > 0 {
		conn.SetReadDeadline(time.Time{})
	}

	username, ok := s.authenticate(context.Background(), conn, line)
	if !ok {
		conn.Close()
		return
	}

	logger = logger.With("username", username)
	sess := newSession(connID, username, conn, s.config.SendQueue)
	s.register(sess)
	defer s.unregister(sess)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				logger.Info("read failed", "error", err)
			}
			logger.Info("client disconnected")
			return
		}

		rec, err := protocol.ParseClientRecord(line)
		if err != nil {
			// Bad line; parsing resumes at the next terminator.
			continue
		}
		if rec.Type != protocol.TypeMessage || rec.Content == "" {
			continue
		}

		s.broadcastMessage(models.Message{
			Sender:  username,
			Content: rec.Content,
			Time:    time.Now().Format("15:04"),
		})
	}
}
