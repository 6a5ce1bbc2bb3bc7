package core

// Client is a single live connection as seen by the core layer. The
// transport creates one per socket and bridges its channels.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	// closed by the hub on unregister; stops this client's command pump.
	done chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
		done:     make(chan struct{}),
	}
}
