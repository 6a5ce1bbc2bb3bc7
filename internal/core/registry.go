package core

// User is a joined connection's identity. Usernames are taken as-is
// from the join payload and are not guaranteed unique.
type User struct {
	ConnID   string
	Username string
}

// Registry maps live connections to users and is the source of
// presence. It preserves insertion order for presence listings.
// Not safe for concurrent use; the hub owns it.
type Registry struct {
	byConn map[string]User
	order  []string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{byConn: make(map[string]User)}
}

// Register adds a user for the connection and returns it.
// Fails with ErrDuplicateConnection if the connection is already known.
func (r *Registry) Register(connID, username string) (User, error) {
	if _, exists := r.byConn[connID]; exists {
		return User{}, ErrDuplicateConnection
	}
	u := User{ConnID: connID, Username: username}
	r.byConn[connID] = u
	r.order = append(r.order, connID)
	return u, nil
}

// Unregister removes the connection's user. Idempotent; the second
// return is false if the connection was not registered.
func (r *Registry) Unregister(connID string) (User, bool) {
	u, exists := r.byConn[connID]
	if !exists {
		return User{}, false
	}
	delete(r.byConn, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return u, true
}

// Lookup returns the user for a connection, if registered.
func (r *Registry) Lookup(connID string) (User, bool) {
	u, exists := r.byConn[connID]
	return u, exists
}

// Users returns all registered users in insertion order.
func (r *Registry) Users() []User {
	out := make([]User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byConn[id])
	}
	return out
}

// Len returns the number of registered users.
func (r *Registry) Len() int { return len(r.byConn) }
