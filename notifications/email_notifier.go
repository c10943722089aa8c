package notifications

import (
	"context"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const deliveryTimeout = 30 * time.Second

type Sender interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, htmlContent string) error
}

type UserLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// EmailNotifier turns selected events into emails. Other events are ignored.
type EmailNotifier struct {
	users  UserLookup
	sender Sender
	log    *zap.Logger
}

func NewEmailNotifier(users UserLookup, sender Sender, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{users: users, sender: sender, log: log.Named("email_notifier")}
}

// Notify sends in the background and never blocks the caller.
func (n *EmailNotifier) Notify(userID uuid.UUID, event services.Event) {
	var (
		subject string
		render  func(name string) string
	)
	switch event.Type {
	case services.EventReviewCreated:
		review, ok := event.Payload.(*models.Review)
		if !ok {
			return
		}
		subject = NewReviewSubject()
		render = func(name string) string { return NewReviewBody(name, review.Rating, review.Comment) }
	case services.EventRequestReceived:
		subject, render = ConnectionRequestSubject(), ConnectionRequestBody
	case services.EventRequestAccepted:
		subject, render = RequestAcceptedSubject(), RequestAcceptedBody
	default:
		return
	}

	go n.deliver(userID, event.Type, subject, render)
}

func (n *EmailNotifier) deliver(userID uuid.UUID, eventType, subject string, render func(string) string) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	log := n.log.With(zap.String("user_id", userID.String()), zap.String("event", eventType))
	user, err := n.users.Get(ctx, userID)
	if err != nil {
		log.Warn("email recipient lookup failed", zap.Error(err))
		return
	}
	if err := n.sender.SendEmail(ctx, user.FullName, user.Email, subject, render(user.FullName)); err != nil {
		log.Error("event email failed", zap.Error(err))
	}
}
