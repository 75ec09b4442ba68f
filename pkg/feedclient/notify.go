package feedclient

// NotificationType enumerates controller notifications.
type NotificationType string

const (
	NotifyFeedRefreshed NotificationType = "feed_refreshed"
	NotifyPostsLoaded   NotificationType = "posts_loaded"
	NotifyLoadFailed    NotificationType = "load_failed"
	NotifyPostDeleted   NotificationType = "post_deleted"
	NotifyDeleteFailed  NotificationType = "delete_failed"
)

// Notification is emitted by the controller after a transition. Rendering
// (toasts, log lines, CLI output) lives entirely in the observer so the
// transition logic stays testable on its own.
type Notification struct {
	Type    NotificationType
	Message string
	Err     error
}

// Notifier observes controller notifications.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}
