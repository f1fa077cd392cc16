package server

import (
	"context"
	"errors"
	"net"
	"time"

	"chatrelay/credstore"
	"chatrelay/protocol"
)

// authenticate runs the handshake gate: it consumes the one handshake line
// the handler read, writes exactly one response, and returns the verdict.
// The username is non-empty only when the connection may enter the active
// phase. Registration always returns a rejected verdict; the client is
// expected to reconnect and log in.
func (s *Server) authenticate(ctx context.Context, conn net.Conn, line string) (string, bool) {
	hs, err := protocol.ParseHandshake(line)
	if err != nil {
		if errors.Is(err, protocol.ErrUnknownAction) {
			s.respond(conn, protocol.StatusError, "Unknown action")
		} else {
			s.respond(conn, protocol.StatusError, "Invalid JSON")
		}
		return "", false
	}

	if hs.Username == "" || hs.Password == "" {
		s.respond(conn, protocol.StatusError, "Invalid credentials")
		return "", false
	}

	switch hs.Action {
	case protocol.ActionRegister:
		err := s.store.Register(ctx, hs.Username, hs.Password)
		switch {
		case errors.Is(err, credstore.ErrUsernameTaken):
			s.respond(conn, protocol.StatusError, "Username already exists")
		case err != nil:
			s.logger.Error("register failed", "username", hs.Username, "error", err)
			s.respond(conn, protocol.StatusError, "Internal error")
		default:
			s.respond(conn, protocol.StatusSuccess, "")
		}
		return "", false

	case protocol.ActionLogin:
		valid, err := s.store.Validate(ctx, hs.Username, hs.Password)
		if err != nil {
			s.logger.Error("login failed", "username", hs.Username, "error", err)
			s.respond(conn, protocol.StatusError, "Internal error")
			return "", false
		}
		if !valid {
			s.respond(conn, protocol.StatusError, "Invalid credentials")
			return "", false
		}
		s.respond(conn, protocol.StatusSuccess, "")
		return hs.Username, true
	}

	return "", false
}

// respond writes the single handshake response. The session does not exist
// yet, so this is the one place that writes to the connection directly.
func (s *Server) respond(conn net.Conn, status, message string) {
	if s.config.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	}
	if _, err := conn.Write(protocol.EncodeResponse(status, message)); err != nil {
		s.logger.Warn("failed to write handshake response", "error", err)
	}
}
