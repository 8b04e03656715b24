package driven

import "context"

// Message is one outbound email.
type Message struct {
	// To is the recipient address.
	To string

	// Subject is the subject line.
	Subject string

	// Body is the plain-text body.
	Body string
}

// Mailer dispatches messages synchronously. One call, one outbound message.
// Callers own the failure handling: a send error must degrade to a logged
// record of the full message, never to an aborted run.
type Mailer interface {
	// Send dispatches the message and returns nil once the server has
	// accepted it.
	Send(ctx context.Context, msg Message) error
}
