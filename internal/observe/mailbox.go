package observe

// Mailbox holds at most one unread value; newer values replace older ones.
type Mailbox[T any] struct {
	ch chan T
}

// NewMailbox returns an empty Mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{ch: make(chan T, 1)}
}

// Put stores v without blocking, dropping any unread value.
func (m *Mailbox[T]) Put(v T) {
	for {
		select {
		case m.ch <- v:
			return
		default:
		}
		select {
		case <-m.ch:
		default:
		}
	}
}

// C yields the latest unread value.
func (m *Mailbox[T]) C() <-chan T {
	return m.ch
}
