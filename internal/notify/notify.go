// Package notify carries user-facing messages from the storefront services to
// whatever presents them.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Warning Kind = "warning"
	Error   Kind = "error"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Info, Success, Warning, Error:
		return k, nil
	case "":
		return Info, nil
	default:
		return "", fmt.Errorf("unknown notification kind %q", s)
	}
}

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type Notifier interface {
	Notify(ctx context.Context, message string, kind Kind)
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(context.Context, string, Kind) {}

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, message string, kind Kind) {
	for _, n := range m {
		n.Notify(ctx, message, kind)
	}
}
