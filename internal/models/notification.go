package models

// NotificationKind selects the email template for a queued notification.
type NotificationKind string

const (
	NotificationWelcome     NotificationKind = "welcome"
	NotificationGradePosted NotificationKind = "grade_posted"
	NotificationBroadcast   NotificationKind = "broadcast"
)

// Notification is the payload handed to the background mail workers.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	To          string           `json:"to"`
	StudentName string           `json:"studentName"`
	Password    string           `json:"-"`
	CourseName  string           `json:"courseName,omitempty"`
	Grade       string           `json:"grade,omitempty"`
	Subject     string           `json:"subject,omitempty"`
	Body        string           `json:"body,omitempty"`
}
