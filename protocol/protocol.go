// Package protocol defines the newline-framed JSON records exchanged with
// clients: one handshake request/response pair per connection, then a stream
// of chat and presence records.
package protocol

import (
	"encoding/json"
	"errors"
	"strings"

	"chatrelay/models"
)

var (
	ErrInvalidRecord = errors.New("invalid record format")
	ErrUnknownAction = errors.New("unknown handshake action")
)

const (
	ActionLogin    = "login"
	ActionRegister = "register"

	TypeMessage  = "message"
	TypeUserList = "user_list"

	StatusSuccess = "success"
	StatusError   = "error"
)

// Handshake is the first record on every connection.
type Handshake struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response acknowledges a handshake. Message is set only on error.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ClientRecord is a steady-state record sent by an authenticated client.
type ClientRecord struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type chatRecord struct {
	Type    string `json:"type"`
	Sender  string `json:"sender"`
	Content string `json:"content"`
	Time    string `json:"time"`
}

type userListRecord struct {
	Type    string   `json:"type"`
	Content []string `json:"content"`
}

// ParseHandshake decodes one handshake line. The action must be present and
// recognized; anything else is a protocol error the caller answers once and
// then closes on.
func ParseHandshake(line string) (*Handshake, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrInvalidRecord
	}

	var hs Handshake
	if err := json.Unmarshal([]byte(line), &hs); err != nil {
		return nil, ErrInvalidRecord
	}

	if hs.Action != ActionLogin && hs.Action != ActionRegister {
		return nil, ErrUnknownAction
	}

	return &hs, nil
}

// ParseClientRecord decodes one steady-state line from a client. A failed
// parse only invalidates that line, never the stream.
func ParseClientRecord(line string) (*ClientRecord, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrInvalidRecord
	}

	var rec ClientRecord
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return nil, ErrInvalidRecord
	}

	return &rec, nil
}

func EncodeResponse(status, message string) []byte {
	return mustEncode(Response{Status: status, Message: message})
}

func EncodeChat(msg models.Message) []byte {
	return mustEncode(chatRecord{
		Type:    TypeMessage,
		Sender:  msg.Sender,
		Content: msg.Content,
		Time:    msg.Time,
	})
}

func EncodeUserList(usernames []string) []byte {
	if usernames == nil {
		usernames = []string{}
	}
	return mustEncode(userListRecord{Type: TypeUserList, Content: usernames})
}

// mustEncode marshals a record and appends the line terminator. All record
// types here are flat structs of strings, so marshaling cannot fail.
func mustEncode(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return append(data, '\n')
}
