package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(ctx context.Context, message string, kind Kind) {
	level := slog.LevelInfo
	switch kind {
	case Warning:
		level = slog.LevelWarn
	case Error:
		level = slog.LevelError
	}
	l.log.Log(ctx, level, "notification", slog.String("kind", string(kind)), slog.String("message", message))
}
