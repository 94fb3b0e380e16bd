package domain

// Message is one direct-chat entry under chats/{key}/messages/{push}.
// Immutable once written; ordering comes from the timestamp, not the
// push id.
type Message struct {
	ID         string `json:"-"`
	Content    string `json:"content"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	SenderName string `json:"name,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// LastMessage is the denormalized preview record at
// chats/{key}/lastMessage. It mirrors the newest Message plus an
// independent read bit flipped by the receiver.
type LastMessage struct {
	Content    string `json:"content"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	SenderName string `json:"name,omitempty"`
	Timestamp  string `json:"timestamp"`
	Read       bool   `json:"read"`
}

// Conversation is the list-view projection of one two-party chat.
// Unread is derived per viewer, never stored.
type Conversation struct {
	Key         string
	LastMessage LastMessage
	Unread      bool
}
