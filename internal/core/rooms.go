package core

// DefaultRoom is assigned to every connection on join.
const DefaultRoom = "General"

// Rooms tracks which room each connection is in. Rooms are implicit:
// created by first reference, gone when the last member leaves. Each
// connection is in exactly one room at a time.
// Not safe for concurrent use; the hub owns it.
type Rooms struct {
	byConn map[string]string
}

// NewRooms constructs an empty room directory.
func NewRooms() *Rooms {
	return &Rooms{byConn: make(map[string]string)}
}

// Set moves the connection into the named room.
func (r *Rooms) Set(connID, room string) {
	r.byConn[connID] = room
}

// Remove drops the connection's membership. Idempotent.
func (r *Rooms) Remove(connID string) {
	delete(r.byConn, connID)
}

// Of returns the connection's current room, if any.
func (r *Rooms) Of(connID string) (string, bool) {
	room, exists := r.byConn[connID]
	return room, exists
}

// Members returns the ids of connections currently in the room.
// Derived by filtering; connection counts are chat-room scale.
func (r *Rooms) Members(room string) []string {
	var out []string
	for connID, name := range r.byConn {
		if name == room {
			out = append(out, connID)
		}
	}
	return out
}
