package notifications

import (
	"fmt"
	"html"
	"time"
)

func LessonReminderSubject() string {
	return "Reminder: your lesson starts in 1 hour"
}

// LessonReminderBody renders the reminder sent to both lesson participants.
func LessonReminderBody(recipientName, otherName string, start time.Time, conferenceLink *string) string {
	body := fmt.Sprintf(
		"<h1>Lesson Reminder</h1><p>Hi %s,</p><p>Your lesson with %s starts at %s UTC.</p>",
		html.EscapeString(recipientName),
		html.EscapeString(otherName),
		start.UTC().Format("Mon, 02 Jan 2006 15:04"),
	)
	if conferenceLink != nil && *conferenceLink != "" {
		body += fmt.Sprintf("<p><b>Meeting Link:</b> <a href='%s'>Join Lesson</a></p>", html.EscapeString(*conferenceLink))
	}
	return body
}

func NewReviewSubject() string {
	return "You received a new review"
}

func NewReviewBody(teacherName string, rating int, comment string) string {
	return fmt.Sprintf(
		"<h1>New Review</h1><p>Hi %s,</p><p>A student rated your lesson %d/5:</p><blockquote>%s</blockquote>",
		html.EscapeString(teacherName),
		rating,
		html.EscapeString(comment),
	)
}

func ConnectionRequestSubject() string {
	return "New student connection request"
}

func ConnectionRequestBody(teacherName string) string {
	return fmt.Sprintf(
		"<h1>Connection Request</h1><p>Hi %s,</p><p>A student asked to study with you. Review the request in your dashboard.</p>",
		html.EscapeString(teacherName),
	)
}

func RequestAcceptedSubject() string {
	return "Your connection request was accepted"
}

func RequestAcceptedBody(studentName string) string {
	return fmt.Sprintf(
		"<h1>Request Accepted</h1><p>Hi %s,</p><p>Your teacher accepted your request. You can now schedule lessons together.</p>",
		html.EscapeString(studentName),
	)
}
