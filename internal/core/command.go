package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin introduces the connection with a username.
	CommandJoin CommandKind = iota
	// CommandJoinRoom moves the connection into a room.
	CommandJoinRoom
	// CommandSendMessage delivers a chat message to room participants.
	CommandSendMessage
	// CommandSendPrivate delivers a message to a single connection.
	CommandSendPrivate
	// CommandSetTyping toggles the typing indicator for this connection.
	CommandSetTyping
	// CommandReadMessage records a read receipt on a stored message.
	CommandReadMessage
	// CommandReactMessage records an emoji reaction on a stored message.
	CommandReactMessage
	// CommandDisconnect tears the connection down explicitly.
	CommandDisconnect
)

// Command represents an action requested by a client. Only the fields
// relevant to Kind are set.
type Command struct {
	Kind      CommandKind
	Username  string   // CommandJoin, CommandReactMessage
	Room      string   // CommandJoinRoom; optional override for CommandSendMessage
	Body      string   // CommandSendMessage, CommandSendPrivate
	To        string   // CommandSendPrivate: recipient connection id
	IsTyping  bool     // CommandSetTyping
	MessageID int64    // CommandReadMessage, CommandReactMessage
	Symbol    string   // CommandReactMessage
	File      *FileRef // CommandSendMessage attachment
}
