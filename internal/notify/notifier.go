package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Alert is one user-facing notification.
type Alert struct {
	Summary string
	Body    string
}

// Notifier presents alerts to the user. Presentation failure is
// non-fatal; callers log the error and move on.
type Notifier interface {
	Notify(a Alert) error
}

// Desktop presents alerts through the session's desktop notification
// service.
type Desktop struct{}

// Notify implements Notifier.
func (Desktop) Notify(a Alert) error {
	if err := beeep.Notify(a.Summary, a.Body, ""); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

// Noop discards alerts. Used when notifications are disabled.
type Noop struct{}

// Notify implements Notifier.
func (Noop) Notify(Alert) error { return nil }
