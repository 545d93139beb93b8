package core

// Frame is a marshaled outbound event.
type Frame []byte

// SignalConnection abstracts the system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend queues a frame without blocking. A full buffer drops the
	// frame for this receiver only.
	TrySend(Frame) error
	Close()
}
