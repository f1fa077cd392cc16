package server

import (
	"time"

	"chatrelay/models"
	"chatrelay/protocol"
)

func (s *Server) register(sess *Session) {
	if displaced := s.registry.Add(sess); displaced != nil {
		s.logger.Warn("duplicate login took over registry entry",
			"username", sess.Username, "displaced_conn", displaced.ID)
	}
	go s.writePump(sess)

	s.logger.Info("user joined", "username", sess.Username, "conn_id", sess.ID)
	s.broadcastUserList()
}

// unregister closes the session and, if it still owned its registry entry,
// announces the new membership. Safe to call more than once per session.
func (s *Server) unregister(sess *Session) {
	removed := s.registry.Remove(sess)
	sess.close()
	if removed {
		s.logger.Info("user left", "username", sess.Username, "conn_id", sess.ID)
		s.broadcastUserList()
	}
}

func (s *Server) broadcastMessage(msg models.Message) {
	s.fanOut(protocol.EncodeChat(msg))
}

func (s *Server) broadcastUserList() {
	s.fanOut(protocol.EncodeUserList(s.registry.Usernames()))
}

// fanOut delivers one framed record to every sink in the current snapshot.
// Delivery is best-effort and independent per sink: a sink that is gone or
// backed up is removed, which cascades exactly one more presence broadcast.
func (s *Server) fanOut(payload []byte) {
	for _, sess := range s.registry.Snapshot() {
		if !sess.enqueue(payload) {
			s.unregister(sess)
		}
	}
}

// writePump drains one session's outbound queue. Any write failure means the
// connection is gone; the pump removes the session and stops.
func (s *Server) writePump(sess *Session) {
	for {
		select {
		case payload := <-sess.send:
			if s.config.WriteTimeout > 0 {
				sess.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			}
			if _, err := sess.conn.Write(payload); err != nil {
				s.logger.Info("write failed", "username", sess.Username, "error", err)
				s.unregister(sess)
				return
			}
		case <-sess.done:
			return
		}
	}
}
