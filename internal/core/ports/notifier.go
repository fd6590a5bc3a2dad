package ports

import "context"

// Message is a composed outbound email ready for delivery. Kind labels the
// message for metrics ("confirmation", "temp_password").
type Message struct {
	Kind    string
	To      string
	Subject string
	HTML    string
}

// Mailer delivers a single message over the outbound email transport.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier dispatches account emails fire-and-forget: calls return
// immediately and delivery failures are never reported back.
type Notifier interface {
	SendConfirmation(email string, userID int64)
	SendTempPassword(email, tempPassword string)
}
