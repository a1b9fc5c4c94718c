package notify

import (
	"context"
	"log"
)

// LogNotifier writes messages to the process log. It is the default when
// e-mail delivery is not configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Publish(ctx context.Context, message string) error {
	log.Printf("📨 [notify] %s", message)
	return nil
}
