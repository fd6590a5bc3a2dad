package mail

import (
	"strings"

	"github.com/coderun/account-service/internal/core/ports"
)

// Dispatcher accepts composed messages for background delivery.
type Dispatcher interface {
	Enqueue(msg ports.Message)
}

// Notifier composes account emails and hands them to the dispatcher.
// Implements ports.Notifier: calls return as soon as the message is queued.
type Notifier struct {
	dispatcher Dispatcher
	baseURL    string
}

func NewNotifier(dispatcher Dispatcher, baseURL string) *Notifier {
	return &Notifier{
		dispatcher: dispatcher,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (n *Notifier) SendConfirmation(email string, userID int64) {
	n.dispatcher.Enqueue(ConfirmationMessage(n.baseURL, email, userID))
}

func (n *Notifier) SendTempPassword(email, tempPassword string) {
	n.dispatcher.Enqueue(TempPasswordMessage(email, tempPassword))
}
