package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Snapshot is a consistent read of presence and history, taken inside
// the hub loop for late-joining clients.
type Snapshot struct {
	Users    []User
	Messages []*Message
}

type inbound struct {
	client *Client
	cmd    *Command
}

// Hub is the event router. It owns the four shared stores and
// serializes every event through a single goroutine, so each command
// mutates state and computes its fan-out as one atomic step.
type Hub struct {
	log zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan inbound
	snapshots  chan chan Snapshot

	clients  map[string]*Client
	registry *Registry
	rooms    *Rooms
	ledger   *Ledger
	typing   *Typing
}

// NewHub creates a hub with a history window of historyLimit messages.
// A nil logger disables logging.
func NewHub(logger *zerolog.Logger, historyLimit int) *Hub {
	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}
	return &Hub{
		log:        log,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan inbound),
		snapshots:  make(chan chan Snapshot),
		clients:    make(map[string]*Client),
		registry:   NewRegistry(),
		rooms:      NewRooms(),
		ledger:     NewLedger(historyLimit),
		typing:     NewTyping(),
	}
}

// RegisterClient attaches a connection to the hub. Run must be active.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient detaches a connection. Idempotent.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Snapshot returns presence and history as of one point in the event
// sequence.
func (h *Hub) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case h.snapshots <- reply:
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Run processes events until the context is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		case in := <-h.commands:
			h.dispatch(in.client, in.cmd)
		case reply := <-h.snapshots:
			reply <- Snapshot{
				Users:    h.registry.Users(),
				Messages: h.ledger.Recent(),
			}
		}
	}
}

func (h *Hub) addClient(c *Client) {
	if _, exists := h.clients[c.ID]; exists {
		return
	}
	h.clients[c.ID] = c
	go h.pump(c)
}

// pump forwards the client's commands into the hub loop until the hub
// unregisters the client or the transport closes the channel.
func (h *Hub) pump(c *Client) {
	for {
		select {
		case <-c.done:
			return
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.commands <- inbound{client: c, cmd: cmd}:
			case <-c.done:
				return
			}
		}
	}
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(c, cmd.Username)
	case CommandJoinRoom:
		h.handleJoinRoom(c, cmd.Room)
	case CommandSendMessage:
		h.handleSendMessage(c, cmd)
	case CommandSendPrivate:
		h.handleSendPrivate(c, cmd)
	case CommandSetTyping:
		h.handleSetTyping(c, cmd.IsTyping)
	case CommandReadMessage:
		h.handleReadMessage(c, cmd.MessageID)
	case CommandReactMessage:
		h.handleReactMessage(c, cmd)
	case CommandDisconnect:
		h.removeClient(c)
	}
}

func (h *Hub) handleJoin(c *Client, username string) {
	user, err := h.registry.Register(c.ID, username)
	if err != nil {
		h.sendTo(c, &Event{Kind: EventError, Error: coreError(ErrCodeDuplicateConnection, "already joined")})
		return
	}
	h.rooms.Set(c.ID, DefaultRoom)
	h.log.Debug().Str("conn_id", c.ID).Str("user", username).Msg("user joined")

	h.broadcast(&Event{Kind: EventPresence, Users: h.registry.Users()})
	h.broadcast(&Event{Kind: EventUserJoined, User: user.Username, Room: DefaultRoom})
	h.sendTo(c, &Event{Kind: EventHistory, Messages: h.ledger.Recent()})
	h.sendTo(c, &Event{Kind: EventTyping, Typing: h.typing.Active()})
}

func (h *Hub) handleJoinRoom(c *Client, room string) {
	if _, joined := h.registry.Lookup(c.ID); !joined {
		h.sendTo(c, &Event{Kind: EventError, Error: coreError(ErrCodeNotJoined, "join first")})
		return
	}
	h.rooms.Set(c.ID, room)
}

func (h *Hub) handleSendMessage(c *Client, cmd *Command) {
	sender := h.senderName(c.ID)
	room := cmd.Room
	if room == "" {
		room, _ = h.rooms.Of(c.ID)
	}
	if room == "" {
		room = DefaultRoom
	}

	msg := h.ledger.Append(&Message{
		SenderID:  c.ID,
		Sender:    sender,
		Body:      cmd.Body,
		Room:      room,
		File:      cmd.File,
		ReadBy:    []string{sender},
		CreatedAt: time.Now(),
	})

	ev := &Event{Kind: EventMessage, Room: room, Message: msg.snapshot()}
	for _, connID := range h.rooms.Members(room) {
		if member, attached := h.clients[connID]; attached {
			h.sendTo(member, ev)
		}
	}
}

func (h *Hub) handleSendPrivate(c *Client, cmd *Command) {
	sender := h.senderName(c.ID)
	msg := h.ledger.Append(&Message{
		SenderID:  c.ID,
		Sender:    sender,
		Body:      cmd.Body,
		To:        cmd.To,
		ReadBy:    []string{sender},
		CreatedAt: time.Now(),
	})

	ev := &Event{Kind: EventMessage, Message: msg.snapshot()}
	h.sendTo(c, ev)
	if recipient, attached := h.clients[cmd.To]; attached && recipient != c {
		h.sendTo(recipient, ev)
	}
	// Offline recipient: best effort, silently dropped.
}

func (h *Hub) handleSetTyping(c *Client, isTyping bool) {
	user, joined := h.registry.Lookup(c.ID)
	if !joined {
		return
	}
	h.typing.Set(c.ID, user.Username, isTyping)
	h.broadcast(&Event{Kind: EventTyping, Typing: h.typing.Active()})
}

func (h *Hub) handleReadMessage(c *Client, messageID int64) {
	user, joined := h.registry.Lookup(c.ID)
	if !joined {
		return
	}
	readBy, found, changed := h.ledger.MarkRead(messageID, user.Username)
	if !found || !changed {
		return
	}
	msg, _ := h.ledger.Find(messageID)
	ev := &Event{Kind: EventMessageRead, MessageID: messageID, ReadBy: readBy, Room: msg.Room}
	h.notifyForMessage(msg, ev)
}

func (h *Hub) handleReactMessage(c *Client, cmd *Command) {
	username := cmd.Username
	if username == "" {
		username = h.senderName(c.ID)
	}
	reactions, found := h.ledger.AddReaction(cmd.MessageID, cmd.Symbol, username)
	if !found {
		return
	}
	msg, _ := h.ledger.Find(cmd.MessageID)
	ev := &Event{Kind: EventMessageReaction, MessageID: cmd.MessageID, Reactions: reactions, Room: msg.Room}
	h.notifyForMessage(msg, ev)
}

// notifyForMessage scopes an update the way the message is scoped:
// private messages notify the original sender, room messages notify the
// room's current members, anything else goes to everyone.
func (h *Hub) notifyForMessage(msg *Message, ev *Event) {
	switch {
	case msg.Private():
		if sender, attached := h.clients[msg.SenderID]; attached {
			h.sendTo(sender, ev)
		}
	case msg.Room != "":
		for _, connID := range h.rooms.Members(msg.Room) {
			if member, attached := h.clients[connID]; attached {
				h.sendTo(member, ev)
			}
		}
	default:
		h.broadcast(ev)
	}
}

func (h *Hub) removeClient(c *Client) {
	if _, attached := h.clients[c.ID]; !attached {
		return
	}
	delete(h.clients, c.ID)
	close(c.done)

	user, wasJoined := h.registry.Unregister(c.ID)
	h.rooms.Remove(c.ID)
	h.typing.Clear(c.ID)

	if !wasJoined {
		return
	}
	h.log.Debug().Str("conn_id", c.ID).Str("user", user.Username).Msg("user left")
	h.broadcast(&Event{Kind: EventUserLeft, User: user.Username})
	h.broadcast(&Event{Kind: EventPresence, Users: h.registry.Users()})
	h.broadcast(&Event{Kind: EventTyping, Typing: h.typing.Active()})
}

// senderName degrades to a safe default when the connection never
// joined; a missing user must not crash or block a send.
func (h *Hub) senderName(connID string) string {
	if user, joined := h.registry.Lookup(connID); joined {
		return user.Username
	}
	return "Anonymous"
}

func (h *Hub) broadcast(ev *Event) {
	for _, c := range h.clients {
		h.sendTo(c, ev)
	}
}

func (h *Hub) sendTo(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Drop if slow consumer.
	}
}
