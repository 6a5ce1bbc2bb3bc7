package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventPresence carries the full ordered user list.
	EventPresence EventKind = iota
	// EventUserJoined announces a user joining the chat.
	EventUserJoined
	// EventUserLeft announces a user leaving the chat.
	EventUserLeft
	// EventMessage notifies recipients about a chat message.
	EventMessage
	// EventTyping carries the current set of typing usernames.
	EventTyping
	// EventMessageRead notifies about an updated read-receipt set.
	EventMessageRead
	// EventMessageReaction notifies about an updated reaction map.
	EventMessageReaction
	// EventHistory delivers recent messages to a client upon joining.
	EventHistory
	// EventError notifies a client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
// Payload fields hold snapshots; the hub's stores keep mutating their
// own copies after the event is emitted.
type Event struct {
	Kind      EventKind
	Room      string
	User      string
	Users     []User
	Typing    []string
	Message   *Message
	Messages  []*Message
	MessageID int64
	ReadBy    []string
	Reactions map[string][]string
	Error     *CoreError
}
