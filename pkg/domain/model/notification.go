package model

// Notification is a rendered report ready for delivery
type Notification struct {
	Subject string
	Body    string
}
