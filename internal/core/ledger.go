package core

// DefaultHistoryLimit bounds the in-memory message window.
const DefaultHistoryLimit = 100

// Ledger is the bounded store of recently sent messages, room and
// private alike. Messages are appended in send order and evicted FIFO
// once the window is full. Ids come from an explicit sequence counter,
// never from the clock, so they stay strictly increasing and unique
// even under bursts.
// Not safe for concurrent use; the hub owns it.
type Ledger struct {
	capacity int
	seq      int64
	msgs     []*Message
	byID     map[int64]*Message
}

// NewLedger constructs a ledger keeping at most capacity messages.
// Non-positive capacity falls back to DefaultHistoryLimit.
func NewLedger(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultHistoryLimit
	}
	return &Ledger{
		capacity: capacity,
		byID:     make(map[int64]*Message),
	}
}

// Append assigns the message its id, stores it, and evicts the oldest
// entry if the window overflows. Returns the stored message.
func (l *Ledger) Append(m *Message) *Message {
	l.seq++
	m.ID = l.seq
	l.msgs = append(l.msgs, m)
	l.byID[m.ID] = m
	if len(l.msgs) > l.capacity {
		oldest := l.msgs[0]
		l.msgs = l.msgs[1:]
		delete(l.byID, oldest.ID)
	}
	return m
}

// Find returns the stored message by id. A missing id is normal: the
// message may have been evicted already.
func (l *Ledger) Find(id int64) (*Message, bool) {
	m, exists := l.byID[id]
	return m, exists
}

// MarkRead adds username to the message's read set. The second return
// is false when the message is gone. The third reports whether the set
// actually changed; marking twice is a no-op.
func (l *Ledger) MarkRead(id int64, username string) ([]string, bool, bool) {
	m, exists := l.byID[id]
	if !exists {
		return nil, false, false
	}
	for _, u := range m.ReadBy {
		if u == username {
			return append([]string(nil), m.ReadBy...), true, false
		}
	}
	m.ReadBy = append(m.ReadBy, username)
	return append([]string(nil), m.ReadBy...), true, true
}

// AddReaction adds username under the given symbol. Idempotent; returns
// a copy of the resulting reaction map, or false when the message is
// gone.
func (l *Ledger) AddReaction(id int64, symbol, username string) (map[string][]string, bool) {
	m, exists := l.byID[id]
	if !exists {
		return nil, false
	}
	if m.Reactions == nil {
		m.Reactions = make(map[string][]string)
	}
	present := false
	for _, u := range m.Reactions[symbol] {
		if u == username {
			present = true
			break
		}
	}
	if !present {
		m.Reactions[symbol] = append(m.Reactions[symbol], username)
	}
	return copyReactions(m.Reactions), true
}

// Recent returns snapshots of the stored messages, oldest first.
func (l *Ledger) Recent() []*Message {
	out := make([]*Message, 0, len(l.msgs))
	for _, m := range l.msgs {
		out = append(out, m.snapshot())
	}
	return out
}

// Len returns the number of stored messages.
func (l *Ledger) Len() int { return len(l.msgs) }
