package domain

// MessageKind classifies a queued stream message
type MessageKind int

const (
	// KindLog carries one decoded, cleaned log line
	KindLog MessageKind = iota
	// KindError carries a stream-level error rendered inline by the consumer
	KindError
	// KindNoLogs signals that no logs exist in the requested window
	KindNoLogs
)

// String returns the string representation of MessageKind
func (k MessageKind) String() string {
	switch k {
	case KindLog:
		return "log"
	case KindError:
		return "error"
	case KindNoLogs:
		return "no_logs"
	default:
		return "unknown"
	}
}

// Message is one item produced by a stream worker and consumed by the
// session manager. SessionID 0 is reserved for untagged messages, which are
// always processed regardless of the current session.
type Message struct {
	SessionID int
	Kind      MessageKind
	Payload   string
}
