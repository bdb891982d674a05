// Package notify carries user-visible messages from the core to whatever
// surface is rendering them (terminal, TUI status line).
package notify

import (
	"fmt"
	"io"
	"log"
	"sync"
)

type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Notifier is fire-and-forget: implementations must not block the caller.
type Notifier interface {
	Notify(level Level, message string)
}

// Func adapts a plain function to Notifier.
type Func func(level Level, message string)

func (f Func) Notify(level Level, message string) { f(level, message) }

// Discard drops every message.
type Discard struct{}

func (Discard) Notify(Level, string) {}

// Writer prints one line per message, e.g. "[error] Failed to save data".
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Notify(level Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.w, "[%s] %s\n", level, message)
}

// Logged mirrors warnings and errors into the process log before forwarding.
type Logged struct {
	next   Notifier
	logger *log.Logger
}

func NewLogged(next Notifier, logger *log.Logger) Logged {
	if logger == nil {
		logger = log.Default()
	}
	if next == nil {
		next = Discard{}
	}
	return Logged{next: next, logger: logger}
}

func (n Logged) Notify(level Level, message string) {
	if level == Warning || level == Error {
		n.logger.Printf("%s: %s", level, message)
	}
	n.next.Notify(level, message)
}

// Message is one notification delivered through a Channel.
type Message struct {
	Level Level
	Text  string
}

// Channel buffers messages for an event loop to drain. When the buffer is
// full the oldest pending message is dropped so Notify never blocks.
type Channel struct {
	ch chan Message
}

func NewChannel(size int) *Channel {
	if size < 1 {
		size = 1
	}
	return &Channel{ch: make(chan Message, size)}
}

func (c *Channel) Notify(level Level, message string) {
	msg := Message{Level: level, Text: message}
	for {
		select {
		case c.ch <- msg:
			return
		default:
		}
		select {
		case <-c.ch:
		default:
		}
	}
}

// C exposes the receive side.
func (c *Channel) C() <-chan Message { return c.ch }
