package models

type User struct {
	ID       int64
	Username string
	Password string // hashed
}

// Message is a chat message as relayed to clients. Time is the server-side
// receipt stamp in HH:MM form; clients never supply it.
type Message struct {
	Sender  string
	Content string
	Time    string
}
