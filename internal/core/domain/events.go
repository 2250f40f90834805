package domain

// EventKind discriminates ledger events.
type EventKind string

const (
	// EventMinted is published after a successful mint.
	EventMinted EventKind = "minted"

	// EventTransferred is published after a successful transfer.
	EventTransferred EventKind = "transferred"
)

// Event is a notification published after a balance-changing operation
// has committed. Events are informational: checkpoint appends happen
// inside the committing transaction, not in event listeners.
type Event struct {
	Kind  EventKind `json:"kind"`
	Token TokenID   `json:"token"`

	// From is the sender account (empty for mints).
	From AccountID `json:"from,omitempty"`

	// To is the recipient account.
	To AccountID `json:"to"`

	// Step is the time step the operation committed at.
	Step uint32 `json:"step"`
}

// EventListener receives committed ledger events.
//
// Listeners run synchronously after commit; they must not block for
// long and must not assume they can veto the operation.
type EventListener interface {
	OnEvent(ev Event)
}

// EventListenerFunc adapts a function to the EventListener interface.
type EventListenerFunc func(ev Event)

// OnEvent implements EventListener.
func (f EventListenerFunc) OnEvent(ev Event) {
	f(ev)
}
