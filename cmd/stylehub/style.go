package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dwikikusuma/stylehub/internal/notify"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#101F38"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a94a6"))
	totalStyle = lipgloss.NewStyle().Bold(true)

	badgeBase = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#ffffff"))
	badges    = map[notify.Kind]lipgloss.Style{
		notify.Info:    badgeBase.Background(lipgloss.Color("#2196F3")),
		notify.Success: badgeBase.Background(lipgloss.Color("#8BC34A")),
		notify.Warning: badgeBase.Background(lipgloss.Color("#FFC107")).Foreground(lipgloss.Color("#101F38")),
		notify.Error:   badgeBase.Background(lipgloss.Color("#e53935")),
	}
)

// consoleNotifier prints notifications as coloured badges.
type consoleNotifier struct {
	w io.Writer
}

func (c consoleNotifier) Notify(_ context.Context, message string, kind notify.Kind) {
	style, ok := badges[kind]
	if !ok {
		style = badges[notify.Info]
	}
	fmt.Fprintf(c.w, "%s %s\n", style.Render(strings.ToUpper(string(kind))), message)
}
