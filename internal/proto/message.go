package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeJoin        = "join"
	InboundTypeJoinRoom    = "joinRoom"
	InboundTypeSendMessage = "sendMessage"
	InboundTypeSetTyping   = "setTyping"
	InboundTypePrivate     = "sendPrivateMessage"
	InboundTypeRead        = "readMessage"
	InboundTypeReact       = "reactMessage"
	InboundTypeDisconnect  = "disconnect"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventUsers           = "users"
	EventUserJoined      = "user_joined"
	EventUserLeft        = "user_left"
	EventMessage         = "message"
	EventTyping          = "typing"
	EventMessageRead     = "message_read"
	EventMessageReaction = "message_reaction"
	EventHistory         = "history"
)

// JoinData introduces the connection with a username.
type JoinData struct {
	Username string `json:"username"`
}

// JoinRoomData requests to move into a room.
type JoinRoomData struct {
	Room string `json:"roomName"`
}

// FileData describes an uploaded attachment on a message.
type FileData struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
}

// SendMessageData is a chat message from the client. Room overrides the
// sender's current membership when set.
type SendMessageData struct {
	Body string    `json:"body"`
	Room string    `json:"room,omitempty"`
	File *FileData `json:"file,omitempty"`
}

// SetTypingData toggles the typing indicator.
type SetTypingData struct {
	IsTyping bool `json:"isTyping"`
}

// PrivateMessageData is a one-to-one message to a connection id.
type PrivateMessageData struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// ReadMessageData records a read receipt.
type ReadMessageData struct {
	MessageID int64 `json:"messageId"`
}

// ReactMessageData records an emoji reaction.
type ReactMessageData struct {
	MessageID int64  `json:"messageId"`
	Symbol    string `json:"symbol"`
	Username  string `json:"username"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// UserInfo is one entry of a presence listing.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// EventUsersData is the full presence list, in join order.
type EventUsersData struct {
	Users []UserInfo `json:"users"`
}

// EventUserJoinedData announces a user joining the chat.
type EventUserJoinedData struct {
	User string `json:"user"`
	Room string `json:"room"`
}

// EventUserLeftData announces a user leaving the chat.
type EventUserLeftData struct {
	User string `json:"user"`
}

// EventMessageData is a delivered chat message.
type EventMessageData struct {
	ID        int64               `json:"id"`
	From      string              `json:"from"`
	FromID    string              `json:"fromId"`
	Body      string              `json:"body"`
	Room      string              `json:"room,omitempty"`
	To        string              `json:"to,omitempty"`
	File      *FileData           `json:"file,omitempty"`
	ReadBy    []string            `json:"readBy"`
	Reactions map[string][]string `json:"reactions,omitempty"`
	TS        int64               `json:"ts"`
}

// EventTypingData is the current set of typing usernames.
type EventTypingData struct {
	Users []string `json:"users"`
}

// EventMessageReadData is an updated read-receipt set.
type EventMessageReadData struct {
	MessageID int64    `json:"messageId"`
	ReadBy    []string `json:"readBy"`
}

// EventMessageReactionData is an updated reaction map.
type EventMessageReactionData struct {
	MessageID int64               `json:"messageId"`
	Reactions map[string][]string `json:"reactions"`
}

// EventHistoryData delivers recent messages to a joining client.
type EventHistoryData struct {
	Messages []EventMessageData `json:"messages"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
