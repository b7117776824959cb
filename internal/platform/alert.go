package platform

import (
	"fmt"
	"io"
	"sync"

	"github.com/mrlokans/tradui/internal/logger"
)

// Alerter presents a message to the user.
type Alerter interface {
	Alert(message string)
}

// LogAlerter reports alerts through the structured logger.
type LogAlerter struct {
	Logger *logger.Logger
}

func (a LogAlerter) Alert(message string) {
	l := a.Logger
	if l == nil {
		l = logger.Default()
	}
	l.Error("alert", "message", message)
}

// WriterAlerter prints alerts, one per line.
type WriterAlerter struct {
	mu sync.Mutex
	W  io.Writer
}

func NewWriterAlerter(w io.Writer) *WriterAlerter {
	return &WriterAlerter{W: w}
}

func (a *WriterAlerter) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, _ = fmt.Fprintf(a.W, "Error: %s\n", message)
}

// AlertFatal shows err through alerter when it is a FatalUserError and reports whether it did.
func AlertFatal(alerter Alerter, err error) bool {
	if err == nil || !IsFatal(err) {
		return false
	}
	alerter.Alert(err.Error())
	return true
}
