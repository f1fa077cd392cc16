package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatrelay/models"
)

func TestParseHandshake(t *testing.T) {
	hs, err := ParseHandshake(`{"action":"login","username":"alice","password":"pw1"}` + "\n")
	require.NoError(t, err)
	assert.Equal(t, ActionLogin, hs.Action)
	assert.Equal(t, "alice", hs.Username)
	assert.Equal(t, "pw1", hs.Password)

	hs, err = ParseHandshake(`{"action":"register","username":"bob","password":"pw2"}`)
	require.NoError(t, err)
	assert.Equal(t, ActionRegister, hs.Action)
}

func TestParseHandshakeRejectsBadInput(t *testing.T) {
	_, err := ParseHandshake("not json at all")
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = ParseHandshake("")
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = ParseHandshake(`{"username":"alice","password":"pw1"}`)
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = ParseHandshake(`{"action":"destroy","username":"alice","password":"pw1"}`)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestParseClientRecord(t *testing.T) {
	rec, err := ParseClientRecord(`{"type":"message","content":"hi"}` + "\r\n")
	require.NoError(t, err)
	assert.Equal(t, TypeMessage, rec.Type)
	assert.Equal(t, "hi", rec.Content)

	_, err = ParseClientRecord("{broken")
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestEncodeChat(t *testing.T) {
	line := EncodeChat(models.Message{Sender: "alice", Content: "hi", Time: "12:30"})
	assert.Equal(t,
		`{"type":"message","sender":"alice","content":"hi","time":"12:30"}`+"\n",
		string(line))
}

func TestEncodeUserList(t *testing.T) {
	line := EncodeUserList([]string{"alice", "bob"})
	assert.Equal(t, `{"type":"user_list","content":["alice","bob"]}`+"\n", string(line))

	// An empty membership still encodes as an array.
	assert.Equal(t, `{"type":"user_list","content":[]}`+"\n", string(EncodeUserList(nil)))
}

func TestEncodeResponse(t *testing.T) {
	assert.Equal(t, `{"status":"success"}`+"\n", string(EncodeResponse(StatusSuccess, "")))
	assert.Equal(t,
		`{"status":"error","message":"Invalid credentials"}`+"\n",
		string(EncodeResponse(StatusError, "Invalid credentials")))
}
