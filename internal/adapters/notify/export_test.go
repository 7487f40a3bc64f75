package notify

// NewDesktopWith creates a Desktop with replaced senders.
func NewDesktopWith(notify, alert func(title, message string, icon any) error) *Desktop {
	return &Desktop{notify: notify, alert: alert}
}
