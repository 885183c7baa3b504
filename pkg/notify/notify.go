package notify

import (
	"fmt"
	"io"
	"os"

	"winterreise/pkg/core"
)

const appName = "winterreise"

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

func (t NotificationType) String() string {
	if t == Error {
		return "ERROR"
	}
	return "INFO"
}

// sender delivers one notification or reports why it could not.
type sender func(title string, message string, nType NotificationType) error

// NotifyService handles user-visible notifications
type NotifyService struct {
	log     core.Logger
	senders []sender
	out     io.Writer
}

// NewNotifyService creates a notification service trying the desktop
// notification bus, then notification tools, then stderr.
func NewNotifyService(log core.Logger) *NotifyService {
	n := &NotifyService{log: log, out: os.Stderr}
	n.senders = []sender{n.sendDBus, n.trySystemNotification}
	return n
}

// Show displays a notification of the specified type. The terminal is the
// last resort and always succeeds unless the write fails.
func (n *NotifyService) Show(title string, message string, nType NotificationType) error {
	for _, send := range n.senders {
		err := send(title, message, nType)
		if err == nil {
			return nil
		}
		n.log.Debug("Notification channel failed", "error", err.Error())
	}
	return n.printToTerminal(title, message, nType)
}

// Error shows an error notification.
func (n *NotifyService) Error(title string, message string) error {
	if err := n.Show(title, message, Error); err != nil {
		return fmt.Errorf("failed to show notification: %w", err)
	}
	return nil
}

// Info shows an informational notification.
func (n *NotifyService) Info(title string, message string) error {
	return n.Show(title, message, Info)
}
