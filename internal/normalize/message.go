package normalize

import "time"

// Message is the canonical row every consumer sees, whatever platform it
// came from.
type Message struct {
	SenderName string    `json:"sender_name"`
	Content    *string   `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

// Text returns the content, or "" when the message has none.
func (m Message) Text() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}
