package interfaces

// MessagePool supplies the text strings used for randomized comment
// injection. Read-only during a session.
type MessagePool interface {
	// Pick returns one message from the pool.
	Pick() string

	// Size returns the number of messages in the pool.
	Size() int
}
