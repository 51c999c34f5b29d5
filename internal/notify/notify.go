// Package notify reports pipeline progress to the user. The log
// notifier writes to standard logging; the desktop notifier shells out
// to notify-send when available.
package notify

import (
	"log"
	"os/exec"
)

// Notifier receives stage transitions and user-facing errors.
type Notifier interface {
	Stage(msg string)
	Error(msg string)
}

// Kind selects a notifier implementation.
type Kind string

const (
	KindLog     Kind = "log"
	KindDesktop Kind = "desktop"
	KindNone    Kind = "none"
)

// New builds the notifier for the configured kind. Unknown kinds fall
// back to logging.
func New(kind Kind) Notifier {
	switch kind {
	case KindDesktop:
		if _, err := exec.LookPath("notify-send"); err != nil {
			log.Printf("notify: notify-send not found, using log notifier")
			return Log{}
		}
		return Desktop{}
	case KindNone:
		return Nop{}
	default:
		return Log{}
	}
}

// Log writes notifications through the standard logger.
type Log struct{}

func (Log) Stage(msg string) { log.Printf("pipeline: %s", msg) }
func (Log) Error(msg string) { log.Printf("pipeline: error: %s", msg) }

// Desktop sends desktop notifications via notify-send.
type Desktop struct{}

func (Desktop) Stage(msg string) { send("Route Voice", msg, "normal") }
func (Desktop) Error(msg string) { send("Route Voice", msg, "critical") }

func send(title, body, urgency string) {
	cmd := exec.Command("notify-send", "-u", urgency, "-t", "3000", title, body)
	if err := cmd.Run(); err != nil {
		log.Printf("notify: notify-send failed: %v", err)
	}
}

// Nop discards stage notifications but still logs errors, so failures
// are never silent.
type Nop struct{}

func (Nop) Stage(string) {}
func (Nop) Error(msg string) { log.Printf("pipeline: error: %s", msg) }
