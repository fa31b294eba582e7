// Package notice carries user-facing messages: the dismissible alerts a
// screen shows after an action succeeds or fails.
package notice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Skotchmaster/coffee_shop/pkg/apiclient"
)

type Level string

const (
	Info  Level = "info"
	Error Level = "error"
)

type Notice struct {
	Level   Level
	Title   string
	Message string
}

type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

func Success(title, message string) Notice {
	return Notice{Level: Info, Title: title, Message: message}
}

// FromError builds the alert for a failed action: the backend's message when
// it sent one, otherwise fallback.
func FromError(title string, err error, fallback string) Notice {
	return Notice{Level: Error, Title: title, Message: apiclient.MessageOr(err, fallback)}
}

type Discard struct{}

func (Discard) Notify(context.Context, Notice) {}

// Writer prints notices as "Title: message" lines.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (p *Writer) Notify(_ context.Context, n Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prefix := ""
	if n.Level == Error {
		prefix = "! "
	}
	if n.Message == "" {
		fmt.Fprintf(p.w, "%s%s\n", prefix, n.Title)
		return
	}
	fmt.Fprintf(p.w, "%s%s: %s\n", prefix, n.Title, n.Message)
}

type Log struct {
	l *slog.Logger
}

func NewLog(l *slog.Logger) *Log {
	return &Log{l: l}
}

func (p *Log) Notify(ctx context.Context, n Notice) {
	lvl := slog.LevelInfo
	if n.Level == Error {
		lvl = slog.LevelWarn
	}
	p.l.Log(ctx, lvl, "notice", "title", n.Title, "message", n.Message)
}

// Recorder keeps every notice; tests read them back.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}
