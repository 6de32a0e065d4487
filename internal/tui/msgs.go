package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"panel-cli/internal/api"
	"panel-cli/internal/model"
	"panel-cli/internal/panel"
)

// loadSeqCounter tags fetch commands so results landing after a screen was
// left (or reloaded) are dropped instead of written into fresh state. Update
// runs single-threaded, so a plain counter is enough.
var loadSeqCounter int

func nextLoadSeq() int {
	loadSeqCounter++
	return loadSeqCounter
}

type toastExpiredMsg struct{ id int64 }

type usersLoadedMsg struct {
	seq   int
	users []model.User
	err   error
}

type postsLoadedMsg struct {
	seq   int
	posts []model.Post
	err   error
}

// userPostsMsg carries the Users screen's read-only posts lookup result.
type userPostsMsg struct {
	seq   int
	user  model.User
	posts []model.Post
	err   error
}

func expireToastCmd(id int64) tea.Cmd {
	return tea.Tick(panel.ToastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func loadUsersCmd(c *api.Client, timeout time.Duration, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		users, err := c.Users(ctx)
		return usersLoadedMsg{seq: seq, users: users, err: err}
	}
}

func loadPostsCmd(c *api.Client, timeout time.Duration, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		posts, err := c.Posts(ctx)
		return postsLoadedMsg{seq: seq, posts: posts, err: err}
	}
}

func loadUserPostsCmd(c *api.Client, timeout time.Duration, seq int, user model.User) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		posts, err := c.PostsByUser(ctx, user.ID)
		return userPostsMsg{seq: seq, user: user, posts: posts, err: err}
	}
}
