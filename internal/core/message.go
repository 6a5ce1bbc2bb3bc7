package core

import "time"

// FileRef points at an uploaded attachment. The core never touches the
// blob itself, only these opaque fields.
type FileRef struct {
	URL      string
	Name     string
	MimeType string
}

// Message is the domain model for a chat message, room or private.
// Exactly one of Room and To is set.
type Message struct {
	ID        int64
	SenderID  string
	Sender    string
	Body      string
	Room      string
	To        string
	File      *FileRef
	ReadBy    []string
	Reactions map[string][]string
	CreatedAt time.Time
}

// Private reports whether the message targets a single connection.
func (m *Message) Private() bool { return m.To != "" }

// snapshot returns a copy safe to hand to other goroutines while the
// ledger keeps mutating the original.
func (m *Message) snapshot() *Message {
	cp := *m
	cp.ReadBy = append([]string(nil), m.ReadBy...)
	if m.Reactions != nil {
		cp.Reactions = copyReactions(m.Reactions)
	}
	return &cp
}

func copyReactions(reactions map[string][]string) map[string][]string {
	out := make(map[string][]string, len(reactions))
	for symbol, users := range reactions {
		out[symbol] = append([]string(nil), users...)
	}
	return out
}
