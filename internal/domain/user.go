package domain

// User is the subset of chat-platform user metadata the bot cares about.
type User struct {
	ID       string
	Name     string
	RealName string
	IsBot    bool
}
