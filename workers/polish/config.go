package polish

// Config holds polish worker settings
type Config struct {
	Workers   int
	QueueSize int
}
