package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"ghostie/internal/cache"
)

// Store is the cache surface the viewer reads and trims.
type Store interface {
	ReadAll(ctx context.Context) ([]cache.Notification, error)
	DeleteByID(ctx context.Context, id string) error
}

// Marker marks a thread read upstream.
type Marker interface {
	MarkRead(ctx context.Context, id string) error
}

// Opener opens a URL for the user.
type Opener func(url string) error

type keyMap struct {
	open     key.Binding
	markRead key.Binding
	reload   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open in browser")),
		markRead: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "mark read")),
		reload:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
	}
}

type loadedMsg struct {
	notifications []cache.Notification
	err           error
}

type markedMsg struct {
	id  string
	err error
}

type openedMsg struct {
	url string
	err error
}

// Model is the inbox viewer state.
type Model struct {
	ctx    context.Context
	store  Store
	marker Marker
	open   Opener
	list   list.Model
	keys   keyMap
	err    error
}

// NewModel builds a viewer. marker may be nil when no token is available, in
// which case "mark read" only removes the local copy.
func NewModel(ctx context.Context, store Store, marker Marker, open Opener) Model {
	if open == nil {
		open = OpenBrowser
	}
	keys := newKeyMap()
	l := list.New(nil, notificationDelegate{}, 80, 24)
	l.Title = "GitHub notifications"
	l.Styles.Title = titleStyle
	l.SetStatusBarItemName("notification", "notifications")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.open, keys.markRead}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.open, keys.markRead, keys.reload}
	}
	return Model{ctx: ctx, store: store, marker: marker, open: open, list: l, keys: keys}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		return m, m.list.SetItems(toItems(msg.notifications))

	case markedMsg:
		if msg.err != nil {
			return m, m.list.NewStatusMessage(errorStyle.Render(msg.err.Error()))
		}
		for i, item := range m.list.Items() {
			if ni, ok := item.(notificationItem); ok && ni.notification.ID == msg.id {
				m.list.RemoveItem(i)
				break
			}
		}
		return m, nil

	case openedMsg:
		if msg.err != nil {
			return m, m.list.NewStatusMessage(errorStyle.Render(fmt.Sprintf("could not open %s: %v", msg.url, msg.err)))
		}
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.open):
			if n, ok := m.Selected(); ok {
				return m, m.openURL(n.URL)
			}
			return m, nil
		case key.Matches(msg, m.keys.markRead):
			if n, ok := m.Selected(); ok {
				return m, m.markRead(n.ID)
			}
			return m, nil
		case key.Matches(msg, m.keys.reload):
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render("failed to read cache: "+m.err.Error()) + "\n"
	}
	return m.list.View()
}

// Selected returns the highlighted notification.
func (m Model) Selected() (cache.Notification, bool) {
	ni, ok := m.list.SelectedItem().(notificationItem)
	if !ok {
		return cache.Notification{}, false
	}
	return ni.notification, true
}

// Notifications returns the listed notifications in display order.
func (m Model) Notifications() []cache.Notification {
	items := m.list.Items()
	out := make([]cache.Notification, 0, len(items))
	for _, item := range items {
		if ni, ok := item.(notificationItem); ok {
			out = append(out, ni.notification)
		}
	}
	return out
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		notifications, err := m.store.ReadAll(m.ctx)
		return loadedMsg{notifications: notifications, err: err}
	}
}

func (m Model) markRead(id string) tea.Cmd {
	return func() tea.Msg {
		if m.marker != nil {
			if err := m.marker.MarkRead(m.ctx, id); err != nil {
				return markedMsg{id: id, err: err}
			}
		}
		return markedMsg{id: id, err: m.store.DeleteByID(m.ctx, id)}
	}
}

func (m Model) openURL(url string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{url: url, err: m.open(url)}
	}
}

func toItems(notifications []cache.Notification) []list.Item {
	sorted := append([]cache.Notification(nil), notifications...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	items := make([]list.Item, len(sorted))
	for i, n := range sorted {
		items[i] = notificationItem{notification: n}
	}
	return items
}

// Run opens the viewer on the terminal and blocks until the user quits.
func Run(ctx context.Context, store Store, marker Marker) error {
	program := tea.NewProgram(NewModel(ctx, store, marker, OpenBrowser), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// OpenBrowser hands url to the platform opener.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
