package ui

import (
	"github.com/godbus/dbus/v5"

	"github.com/yllada/gpg-manager/common"
)

const (
	notificationsService   = "org.freedesktop.Notifications"
	notificationsPath      = "/org/freedesktop/Notifications"
	notificationsInterface = "org.freedesktop.Notifications.Notify"

	notificationTimeout = 5000 // milliseconds
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationSuccess
	NotificationWarning
	NotificationError
)

// Notification represents a system notification
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	Icon    string
}

func (n Notification) icon() string {
	if n.Icon != "" {
		return n.Icon
	}
	switch n.Type {
	case NotificationWarning:
		return "dialog-warning"
	case NotificationError:
		return "dialog-error"
	default:
		return "preferences-system"
	}
}

// urgency follows the freedesktop hint: 0 low, 1 normal, 2 critical.
func (n Notification) urgency() byte {
	switch n.Type {
	case NotificationError:
		return 2
	case NotificationWarning:
		return 1
	default:
		return 0
	}
}

// DBusNotifier sends desktop notifications over the session bus.
type DBusNotifier struct{}

// NewDBusNotifier returns a notifier for the current session.
func NewDBusNotifier() *DBusNotifier {
	return &DBusNotifier{}
}

// Notify implements common.Notifier.
func (d *DBusNotifier) Notify(title, message string) error {
	return d.Show(Notification{Title: title, Message: message, Type: NotificationSuccess})
}

// Show displays n. The bus connection is shared and stays open.
func (d *DBusNotifier) Show(n Notification) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return common.WrapError(err, "failed to connect to session bus")
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(n.urgency()),
	}
	obj := conn.Object(notificationsService, dbus.ObjectPath(notificationsPath))
	call := obj.Call(notificationsInterface, 0,
		common.AppName, uint32(0), n.icon(), n.Title, n.Message,
		[]string{}, hints, int32(notificationTimeout))
	if call.Err != nil {
		return common.WrapError(call.Err, "failed to show notification")
	}
	return nil
}

// NotifySaved shows a notification after preferences were written.
func (a *Application) NotifySaved(restart bool) {
	if a.notifier == nil {
		return
	}
	msg := "Your preferences have been saved"
	if restart {
		msg += ". Some changes take effect after a restart"
	}
	if err := a.notifier.Notify("Preferences saved", msg); err != nil {
		common.LogDebug("Notification not shown: %v", err)
	}
}
