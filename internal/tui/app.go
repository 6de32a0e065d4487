// Package tui is the interactive admin panel: a home menu plus the Users and
// Posts screens. Each screen is created fresh on entry (its load runs exactly
// once per activation) and dropped on exit; in-flight fetches for a dropped
// screen resolve into no-ops via load sequence numbers.
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"panel-cli/internal/api"
)

type view int

const (
	viewHome view = iota
	viewUsers
	viewPosts
)

var homeEntries = []string{"Users", "Posts", "Quit"}

type App struct {
	client  *api.Client
	timeout time.Duration

	width  int
	height int

	view    view
	homeIdx int

	users *usersScreen
	posts *postsScreen
}

func NewApp(client *api.Client, timeout time.Duration) App {
	return App{client: client, timeout: timeout, width: 80, height: 24}
}

// Run starts the panel and blocks until the user quits.
func Run(client *api.Client, timeout time.Duration, profile string) error {
	applyColorProfilePreference(profile)
	p := tea.NewProgram(NewApp(client, timeout), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.users != nil {
			m.users.setSize(msg.Width, msg.Height)
		}
		if m.posts != nil {
			m.posts.setSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view == viewHome {
			return m.updateHome(msg)
		}
		return m.updateScreenKey(msg)
	}

	// Fetch results, toast expiries, and spinner ticks go to the active
	// screen; a screen left behind no longer exists, and its messages are
	// dropped (stale sequence numbers, absent toast ids).
	return m, m.delegate(msg)
}

func (m App) delegate(msg tea.Msg) tea.Cmd {
	switch m.view {
	case viewUsers:
		if m.users != nil {
			return m.users.Update(msg)
		}
	case viewPosts:
		if m.posts != nil {
			return m.posts.Update(msg)
		}
	}
	return nil
}

func (m App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.homeIdx > 0 {
			m.homeIdx--
		}
	case "down", "j":
		if m.homeIdx < len(homeEntries)-1 {
			m.homeIdx++
		}
	case "enter":
		switch homeEntries[m.homeIdx] {
		case "Users":
			return m.enterUsers()
		case "Posts":
			return m.enterPosts()
		default:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m App) enterUsers() (tea.Model, tea.Cmd) {
	s, cmd := newUsersScreen(m.client, m.timeout, m.width, m.height)
	m.users = s
	m.view = viewUsers
	return m, cmd
}

func (m App) enterPosts() (tea.Model, tea.Cmd) {
	s, cmd := newPostsScreen(m.client, m.timeout, m.width, m.height)
	m.posts = s
	m.view = viewPosts
	return m, cmd
}

func (m App) updateScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	busy := false
	switch m.view {
	case viewUsers:
		busy = m.users != nil && m.users.busy()
	case viewPosts:
		busy = m.posts != nil && m.posts.busy()
	}

	if !busy {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc", "backspace":
			// Back home. The screen instance is dropped; re-entering
			// re-creates it and fetches anew, discarding local changes
			// (same as a page reload in the original).
			m.view = viewHome
			m.users = nil
			m.posts = nil
			return m, nil
		}
	}

	return m, m.delegate(msg)
}

func (m App) View() string {
	switch m.view {
	case viewUsers:
		if m.users != nil {
			return m.users.View()
		}
	case viewPosts:
		if m.posts != nil {
			return m.posts.View()
		}
	}
	return m.viewHome()
}

func (m App) viewHome() string {
	var b strings.Builder
	b.WriteString(styleHeader().Render("Admin Panel"))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("manage users and posts from the remote source"))
	b.WriteString("\n\n")

	for i, entry := range homeEntries {
		line := "  " + entry
		if i == m.homeIdx {
			line = styleSelectedRow().Render("> " + entry)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render("enter: select   j/k: move   q: quit"))
	return b.String()
}
