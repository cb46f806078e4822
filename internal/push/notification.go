package push

import (
	"fmt"

	"github.com/jklemm/hearthside/internal/model"
)

// Notification is one concrete thing to tell a user. Each kind carries its
// own guard key suffix and payload, so adding a kind means adding a type
// here rather than branching inside the scheduler loop.
type Notification interface {
	// GuardKind is the kind component of the dedup guard key.
	GuardKind() string
	// Payload builds the JSON payload for the client renderer.
	Payload() Payload
}

// ReminderNotification is the daily "check your tasks" nudge, fired when a
// tick lands in one of the user's configured time windows.
type ReminderNotification struct{}

func (ReminderNotification) GuardKind() string { return model.NotifTypeReminder }

func (ReminderNotification) Payload() Payload {
	return Payload{
		Title: "Task reminder",
		Body:  "Time to check today's tasks.",
		Tag:   "reminder",
		Data:  PayloadData{URL: "/tasks", Type: model.NotifTypeReminder},
	}
}

// TravelNotification alerts that a trip's start date is at most the user's
// configured lead days away.
type TravelNotification struct {
	Trip     model.Trip
	DaysLeft int
}

func (n TravelNotification) GuardKind() string {
	return fmt.Sprintf("%s:%d", model.NotifTypeTravelPrep, n.Trip.ID)
}

func (n TravelNotification) Payload() Payload {
	var body string
	switch n.DaysLeft {
	case 0:
		body = fmt.Sprintf("%s starts today. All packed?", n.Trip.Name)
	case 1:
		body = fmt.Sprintf("1 day until %s. Time to pack!", n.Trip.Name)
	default:
		body = fmt.Sprintf("%d days until %s. Time to pack!", n.DaysLeft, n.Trip.Name)
	}
	return Payload{
		Title: "Trip coming up",
		Body:  body,
		Tag:   fmt.Sprintf("travel-%d", n.Trip.ID),
		Data:  PayloadData{URL: fmt.Sprintf("/trips/%d", n.Trip.ID), Type: model.NotifTypeTravelPrep},
	}
}

// EncouragementNotification marks a newly crossed completion milestone.
// It is emitted in the task-complete request path, not by the scheduler.
type EncouragementNotification struct {
	Threshold int
}

func (n EncouragementNotification) GuardKind() string {
	return fmt.Sprintf("%s:%d", model.NotifTypeEncouragement, n.Threshold)
}

func (n EncouragementNotification) Payload() Payload {
	msg := milestoneMessages[n.Threshold]
	return Payload{
		Title: msg.Title,
		Body:  msg.Body,
		Tag:   "encouragement",
		Data:  PayloadData{URL: "/tasks", Type: model.NotifTypeEncouragement},
	}
}
