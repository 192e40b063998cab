package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"ghostie/internal/cache"
)

// notificationItem wraps a cached notification for the list component.
type notificationItem struct {
	notification cache.Notification
}

func (i notificationItem) FilterValue() string {
	n := i.notification
	return fmt.Sprintf("%s %s %s", n.Name, n.Subject, n.Kind)
}

type notificationDelegate struct{}

func (d notificationDelegate) Height() int { return 2 }

func (d notificationDelegate) Spacing() int { return 1 }

func (d notificationDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws two lines per notification:
// [Kind] owner/repo • 2h ago
// Subject (truncated to fit)
func (d notificationDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ni, ok := item.(notificationItem)
	if !ok {
		return
	}
	n := ni.notification
	selected := index == m.Index()
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	contentWidth := width - 4

	subjectStyle := normalStyle
	border := "  "
	if selected {
		subjectStyle = selectedStyle
		border = selectedBorderStyle.Render("┃") + " "
	}

	line1 := fmt.Sprintf("%s %s %s %s",
		kindStyle.Render("["+n.Kind+"]"),
		repoStyle.Render(n.Name),
		iconDot,
		timeStyle.Render(relativeTime(time.Now(), n.UpdatedAt)),
	)

	subject := strings.ReplaceAll(n.Subject, "\n", " ")
	if runes := []rune(subject); contentWidth > 3 && len(runes) > contentWidth {
		subject = string(runes[:contentWidth-3]) + "..."
	}

	_, _ = fmt.Fprintf(w, "%s%s\n", border, line1)
	_, _ = fmt.Fprintf(w, "%s%s", border, subjectStyle.Render(subject))
}

func relativeTime(now, at time.Time) string {
	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}
