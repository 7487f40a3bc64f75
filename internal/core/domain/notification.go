package domain

// Notification is a desktop toast raised for a failed task.
type Notification struct {
	Title    string
	Subtitle string
	Message  string
	Sound    bool
}
