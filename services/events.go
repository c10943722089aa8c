package services

import "github.com/google/uuid"

const (
	EventLessonCreated       = "lesson.created"
	EventLessonStatusChanged = "lesson.status_changed"
	EventReviewCreated       = "review.created"
	EventRequestReceived     = "request.received"
	EventRequestAccepted     = "request.accepted"
	EventRequestRejected     = "request.rejected"
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Notifier delivers events to connected users. Delivery is best effort.
type Notifier interface {
	Notify(userID uuid.UUID, event Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(uuid.UUID, Event) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// Notifiers fans every event out to each notifier in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(userID uuid.UUID, event Event) {
	for _, n := range ns {
		n.Notify(userID, event)
	}
}
