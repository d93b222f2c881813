// Package notify delivers user-facing toasts. Delivery is fire-and-forget:
// a failing sink never fails the operation that produced the message.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"qa-warehouse-api-server/internal/workflow"

	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one toast. Event is set when the message came from a domain event.
type Message struct {
	Text  string    `json:"text"`
	Level Level     `json:"level"`
	Event string    `json:"event,omitempty"`
	Data  any       `json:"data,omitempty"`
	At    time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

// FromEvent turns a domain event into its success toast.
func FromEvent(e workflow.Event) Message {
	return Message{
		Text:  e.Message(),
		Level: LevelSuccess,
		Event: e.Name(),
		Data:  e,
		At:    time.Now().UTC(),
	}
}

// Publish notifies every event in order.
func Publish(ctx context.Context, n Notifier, events ...workflow.Event) {
	for _, e := range events {
		n.Notify(ctx, FromEvent(e))
	}
}

// LogNotifier writes messages to the structured log.
type LogNotifier struct {
	Log *zap.Logger
}

func (l LogNotifier) Notify(_ context.Context, msg Message) {
	fields := []zap.Field{zap.String("level", string(msg.Level))}
	if msg.Event != "" {
		fields = append(fields, zap.String("event", msg.Event))
	}
	if msg.Level == LevelError || msg.Level == LevelWarning {
		l.Log.Warn(msg.Text, fields...)
		return
	}
	l.Log.Info(msg.Text, fields...)
}

// Broadcaster is satisfied by socket.Hub.
type Broadcaster interface {
	Broadcast(message []byte) int
}

// HubNotifier pushes messages as JSON to every connected dashboard.
type HubNotifier struct {
	Hub Broadcaster
	Log *zap.Logger
}

func (h HubNotifier) Notify(_ context.Context, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		if h.Log != nil {
			h.Log.Error("encode notification", zap.Error(err))
		}
		return
	}
	h.Hub.Broadcast(payload)
}

// Multi fans a message out to each notifier in turn.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) {
	for _, n := range m {
		n.Notify(ctx, msg)
	}
}

// Recorder keeps every message it receives.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *Recorder) Notify(_ context.Context, msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// Events lists the event names received, in order.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.msgs))
	for _, m := range r.msgs {
		if m.Event != "" {
			out = append(out, m.Event)
		}
	}
	return out
}

// Last is the most recent message, or the zero Message.
func (r *Recorder) Last() Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return Message{}
	}
	return r.msgs[len(r.msgs)-1]
}
