package service

import "log"

// Notifier receives task lifecycle events. Implementations run off the
// request path; a slow or failing notifier must not delay the response.
type Notifier interface {
	TaskCreated(ownerID uint, title string)
}

// LogNotifier writes notifications to the process log. It stands in for
// an outbound email integration.
type LogNotifier struct{}

// TaskCreated logs the creation event.
func (LogNotifier) TaskCreated(ownerID uint, title string) {
	log.Printf("notify user %d: task %q created", ownerID, title)
}
