package notify

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Notifier is the side channel for transient user-facing messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Writer prints one line per message, prefixed by level.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Success(msg string) { n.line("ok", msg) }
func (n *Writer) Error(msg string)   { n.line("error", msg) }
func (n *Writer) Info(msg string)    { n.line("info", msg) }

func (n *Writer) line(level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "[%s] %s\n", level, msg)
}

// Log sends messages to the standard logger.
type Log struct{}

func (Log) Success(msg string) { log.Printf("notify ok: %s", msg) }
func (Log) Error(msg string)   { log.Printf("notify error: %s", msg) }
func (Log) Info(msg string)    { log.Printf("notify: %s", msg) }

type discard struct{}

func (discard) Success(string) {}
func (discard) Error(string)   {}
func (discard) Info(string)    {}

// Discard drops every message.
var Discard Notifier = discard{}

// Texts are the three messages of a tracked operation.
type Texts struct {
	Loading string
	Success string
	Error   string
}

// Promise announces fn, runs it and reports its outcome. The error from fn is
// returned unchanged.
func Promise(n Notifier, texts Texts, fn func() error) error {
	if texts.Loading != "" {
		n.Info(texts.Loading)
	}
	if err := fn(); err != nil {
		if texts.Error != "" {
			n.Error(texts.Error)
		}
		return err
	}
	if texts.Success != "" {
		n.Success(texts.Success)
	}
	return nil
}
