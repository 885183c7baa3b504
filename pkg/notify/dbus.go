package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsName   = "org.freedesktop.Notifications"
	notificationsPath   = "/org/freedesktop/Notifications"
	notificationsMethod = notificationsName + ".Notify"

	expireTimeoutMs = 5000
)

// sendDBus posts the notification to the session's notification daemon.
func (n *NotifyService) sendDBus(title string, message string, nType NotificationType) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	urgency := byte(1)
	if nType == Error {
		urgency = 2
	}
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgency),
	}

	obj := conn.Object(notificationsName, dbus.ObjectPath(notificationsPath))
	call := obj.Call(notificationsMethod, 0,
		appName, uint32(0), "", title, message, []string{}, hints, int32(expireTimeoutMs))
	if call.Err != nil {
		return fmt.Errorf("notify call failed: %w", call.Err)
	}

	n.log.Debug("Notification sent over D-Bus", "type", nType.String())
	return nil
}
