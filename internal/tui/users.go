package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"panel-cli/internal/api"
	"panel-cli/internal/model"
	"panel-cli/internal/panel"
)

type usersFocus int

const (
	usersFocusRows usersFocus = iota
	usersFocusSearch
	usersFocusAdd
)

const (
	userFieldName = iota
	userFieldUsername
	userFieldEmail
	userFieldCount
)

// usersScreen owns all Users state: the entity store, the add-form buffer,
// the edit session, the search query, the toast queue, the delete gate, and
// the read-only posts viewer. Nothing here is shared with the Posts screen.
type usersScreen struct {
	client  *api.Client
	timeout time.Duration

	width  int
	height int

	store  panel.Store[model.User]
	toasts *panel.Toasts
	edit   panel.EditSession[model.User]
	gate   panel.ConfirmGate[model.User]

	loading bool
	loadSeq int
	spin    spinner.Model

	focus  usersFocus
	cursor int

	search textinput.Model

	addInputs []textinput.Model
	addFocus  int

	editInputs []textinput.Model
	editFocus  int

	confirmFocus confirmFocus

	viewerOpen    bool
	viewerLoading bool
	viewerSeq     int
	viewerUser    model.User
	viewerPosts   []model.Post
	viewerScroll  int
}

func newUserInputs() []textinput.Model {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = model.MaxUserNameLen
	name.Width = 24

	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = model.MaxUserUsernameLen
	username.Width = 18

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = model.MaxUserEmailLen
	email.Width = 28

	return []textinput.Model{name, username, email}
}

func newUsersScreen(client *api.Client, timeout time.Duration, width, height int) (*usersScreen, tea.Cmd) {
	s := &usersScreen{
		client:  client,
		timeout: timeout,
		width:   width,
		height:  height,
		toasts:  panel.NewToasts(),
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		search:  textinput.New(),
	}
	s.search.Placeholder = "Search users…"
	s.search.Width = 32
	s.addInputs = newUserInputs()
	s.editInputs = newUserInputs()

	s.loading = true
	s.loadSeq = nextLoadSeq()
	return s, tea.Batch(s.spin.Tick, loadUsersCmd(client, timeout, s.loadSeq))
}

// busy reports whether esc should stay on this screen instead of navigating
// back home.
func (s *usersScreen) busy() bool {
	return s.gate.Open() || s.viewerOpen || s.viewerLoading || s.edit.Active() || s.focus != usersFocusRows
}

func (s *usersScreen) setSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *usersScreen) visible() []model.User {
	return panel.Filter(s.store.Records(), s.search.Value())
}

func (s *usersScreen) clampCursor() {
	n := len(s.visible())
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *usersScreen) selected() (model.User, bool) {
	rows := s.visible()
	if len(rows) == 0 || s.cursor >= len(rows) {
		return model.User{}, false
	}
	return rows[s.cursor], true
}

// toast pushes a notification and schedules its expiry.
func (s *usersScreen) toast(message string, kind panel.ToastKind) tea.Cmd {
	t := s.toasts.Push(message, kind)
	return expireToastCmd(t.ID)
}

func (s *usersScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.loading && !s.viewerLoading {
			return nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return cmd

	case toastExpiredMsg:
		// The toast may already be gone via manual dismissal; Dismiss is
		// idempotent either way.
		s.toasts.Dismiss(msg.id)
		return nil

	case usersLoadedMsg:
		if msg.seq != s.loadSeq {
			return nil
		}
		s.loading = false
		if msg.err != nil {
			return s.toast("failed to load users", panel.ToastError)
		}
		s.store.SetAll(msg.users)
		s.clampCursor()
		return nil

	case userPostsMsg:
		if msg.seq != s.viewerSeq {
			return nil
		}
		s.viewerLoading = false
		if msg.err != nil {
			return s.toast("failed to load posts", panel.ToastError)
		}
		s.viewerOpen = true
		s.viewerUser = msg.user
		s.viewerPosts = msg.posts
		s.viewerScroll = 0
		return nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *usersScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case s.gate.Open():
		return s.handleConfirmKey(msg)
	case s.viewerOpen:
		return s.handleViewerKey(msg)
	case s.edit.Active():
		return s.handleEditKey(msg)
	case s.focus == usersFocusAdd:
		return s.handleAddKey(msg)
	case s.focus == usersFocusSearch:
		return s.handleSearchKey(msg)
	default:
		return s.handleRowsKey(msg)
	}
}

func (s *usersScreen) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right":
		if s.confirmFocus == confirmFocusCancel {
			s.confirmFocus = confirmFocusConfirm
		} else {
			s.confirmFocus = confirmFocusCancel
		}
	case "enter":
		if s.confirmFocus == confirmFocusConfirm {
			return s.confirmDelete()
		}
		s.gate.Cancel()
	case "esc":
		s.gate.Cancel()
	}
	return nil
}

func (s *usersScreen) confirmDelete() tea.Cmd {
	target, ok := s.gate.Take()
	if !ok {
		return nil
	}
	removed, ok := s.store.Remove(target.ID)
	if !ok {
		return nil
	}
	s.clampCursor()
	return s.toast(removed.Name+" deleted", panel.ToastSuccess)
}

func (s *usersScreen) handleViewerKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "enter":
		s.viewerOpen = false
		s.viewerPosts = nil
	case "up", "k":
		if s.viewerScroll > 0 {
			s.viewerScroll--
		}
	case "down", "j":
		s.viewerScroll++
	}
	return nil
}

func (s *usersScreen) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		// Users commit on a plain enter. (The Posts screen deliberately
		// differs: ctrl+enter, because enter types into the body.)
		return s.saveEdit()
	case "esc":
		return s.cancelEdit()
	case "tab", "down":
		s.focusEditField((s.editFocus + 1) % userFieldCount)
		return nil
	case "shift+tab", "up":
		s.focusEditField((s.editFocus + userFieldCount - 1) % userFieldCount)
		return nil
	}
	var cmd tea.Cmd
	s.editInputs[s.editFocus], cmd = s.editInputs[s.editFocus].Update(msg)
	return cmd
}

func (s *usersScreen) focusEditField(idx int) {
	s.editFocus = idx
	for i := range s.editInputs {
		if i == idx {
			s.editInputs[i].Focus()
		} else {
			s.editInputs[i].Blur()
		}
	}
}

func (s *usersScreen) startEdit(u model.User) {
	s.edit.Start(u)
	s.editInputs[userFieldName].SetValue(u.Name)
	s.editInputs[userFieldUsername].SetValue(u.Username)
	s.editInputs[userFieldEmail].SetValue(u.Email)
	s.focusEditField(userFieldName)
}

func (s *usersScreen) saveEdit() tea.Cmd {
	w := s.edit.Working()
	if w == nil {
		return nil
	}
	w.Name = s.editInputs[userFieldName].Value()
	w.Username = s.editInputs[userFieldUsername].Value()
	w.Email = s.editInputs[userFieldEmail].Value()

	if err := w.ValidateUpdate(); err != nil {
		// Stay in editing with the invalid copy intact; the user corrects
		// and retries.
		return s.toast(err.Error(), panel.ToastError)
	}

	s.store.Replace(*w)
	name := w.Name
	s.edit.Finish()
	return s.toast(name+" updated", panel.ToastSuccess)
}

func (s *usersScreen) cancelEdit() tea.Cmd {
	s.edit.Discard()
	return s.toast("edit cancelled", panel.ToastInfo)
}

func (s *usersScreen) handleAddKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return s.submitAdd()
	case "esc":
		s.leaveAddForm()
		return nil
	case "tab", "down":
		s.focusAddField((s.addFocus + 1) % userFieldCount)
		return nil
	case "shift+tab", "up":
		s.focusAddField((s.addFocus + userFieldCount - 1) % userFieldCount)
		return nil
	}
	var cmd tea.Cmd
	s.addInputs[s.addFocus], cmd = s.addInputs[s.addFocus].Update(msg)
	return cmd
}

func (s *usersScreen) focusAddField(idx int) {
	s.addFocus = idx
	for i := range s.addInputs {
		if i == idx {
			s.addInputs[i].Focus()
		} else {
			s.addInputs[i].Blur()
		}
	}
}

func (s *usersScreen) leaveAddForm() {
	s.focus = usersFocusRows
	for i := range s.addInputs {
		s.addInputs[i].Blur()
	}
}

func (s *usersScreen) submitAdd() tea.Cmd {
	draft := model.User{
		Name:     s.addInputs[userFieldName].Value(),
		Username: s.addInputs[userFieldUsername].Value(),
		Email:    s.addInputs[userFieldEmail].Value(),
	}
	if err := draft.ValidateCreate(); err != nil {
		// The form buffer is preserved unchanged for correction.
		return s.toast(err.Error(), panel.ToastError)
	}

	draft.ID = s.store.NextID()
	s.store.Append(draft)
	for i := range s.addInputs {
		s.addInputs[i].SetValue("")
	}
	s.focusAddField(userFieldName)
	return s.toast(draft.Name+" added", panel.ToastSuccess)
}

func (s *usersScreen) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.search.SetValue("")
		s.search.Blur()
		s.focus = usersFocusRows
		s.clampCursor()
		return nil
	case "enter":
		s.search.Blur()
		s.focus = usersFocusRows
		return nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.clampCursor()
	return cmd
}

func (s *usersScreen) handleRowsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.visible())-1 {
			s.cursor++
		}
	case "/":
		s.focus = usersFocusSearch
		s.search.Focus()
	case "a":
		s.focus = usersFocusAdd
		s.focusAddField(userFieldName)
	case "e":
		if u, ok := s.selected(); ok {
			s.startEdit(u)
		}
	case "d":
		if u, ok := s.selected(); ok {
			s.gate.Request(u)
			s.confirmFocus = confirmFocusCancel
		}
	case "p":
		if u, ok := s.selected(); ok {
			s.viewerLoading = true
			s.viewerSeq = nextLoadSeq()
			return tea.Batch(s.spin.Tick, loadUserPostsCmd(s.client, s.timeout, s.viewerSeq, u))
		}
	case "r":
		s.loading = true
		s.loadSeq = nextLoadSeq()
		return tea.Batch(s.spin.Tick, loadUsersCmd(s.client, s.timeout, s.loadSeq))
	case "x":
		if t, ok := s.toasts.Oldest(); ok {
			s.toasts.Dismiss(t.ID)
		}
	}
	return nil
}

func (s *usersScreen) View() string {
	if s.gate.Open() {
		target := s.gate.Target()
		body := fmt.Sprintf("Are you sure you want to delete %s?", lipgloss.NewStyle().Bold(true).Render(target.Name))
		return renderConfirmModal(s.width, s.height, "Delete User", body, s.confirmFocus)
	}
	if s.viewerOpen {
		return s.viewPostsViewer()
	}

	var b strings.Builder

	b.WriteString(styleHeader().Render("User Management"))
	b.WriteString("\n")

	if rail := renderToastRail(s.toasts); rail != "" {
		b.WriteString(rail)
		b.WriteString("\n")
	}

	b.WriteString(styleMuted().Render("search: "))
	b.WriteString(s.search.View())
	b.WriteString("\n\n")

	b.WriteString(styleMuted().Render("add: "))
	b.WriteString(s.addInputs[userFieldName].View())
	b.WriteString(" ")
	b.WriteString(s.addInputs[userFieldUsername].View())
	b.WriteString(" ")
	b.WriteString(s.addInputs[userFieldEmail].View())
	if s.focus == usersFocusAdd {
		b.WriteString(styleMuted().Render("  (enter: add, esc: back)"))
	}
	b.WriteString("\n\n")

	if s.loading || s.viewerLoading {
		what := "users"
		if s.viewerLoading {
			what = "posts"
		}
		b.WriteString(s.spin.View())
		b.WriteString(styleMuted().Render(" loading " + what + "…"))
		b.WriteString("\n")
	} else {
		b.WriteString(s.viewTable())
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render(s.footerHelp()))
	return b.String()
}

func (s *usersScreen) footerHelp() string {
	if s.edit.Active() {
		return "enter: save   esc: cancel   tab: next field"
	}
	return "a: add   e: edit   d: delete   p: posts   /: search   r: reload   esc: home   q: quit"
}

func (s *usersScreen) viewTable() string {
	widths := s.columnWidths()
	rows := s.visible()

	var b strings.Builder
	b.WriteString(renderHeaderRow([]string{"ID", "NAME", "USERNAME", "EMAIL"}, widths))
	b.WriteString("\n")

	if len(rows) == 0 {
		if s.search.Value() != "" {
			b.WriteString(styleMuted().Render("no users match your search"))
		} else {
			b.WriteString(styleMuted().Render("no users yet"))
		}
		b.WriteString("\n")
		return b.String()
	}

	maxRows := s.height - 12
	if maxRows < 4 {
		maxRows = 4
	}
	start, end := rowWindow(len(rows), s.cursor, maxRows)
	for i := start; i < end; i++ {
		u := rows[i]
		if s.edit.Editing(u.ID) {
			// Inline edit row: the three inputs replace the text cells.
			b.WriteString(padCell("#"+fmtInt(u.ID), widths[0]))
			b.WriteString(colGap)
			b.WriteString(s.editInputs[userFieldName].View())
			b.WriteString(" ")
			b.WriteString(s.editInputs[userFieldUsername].View())
			b.WriteString(" ")
			b.WriteString(s.editInputs[userFieldEmail].View())
		} else {
			cells := []string{"#" + fmtInt(u.ID), u.Name, "@" + u.Username, u.Email}
			b.WriteString(renderDataRow(cells, widths, s.focus == usersFocusRows && i == s.cursor))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *usersScreen) columnWidths() []int {
	w := s.width
	if w < 60 {
		w = 60
	}
	idW, nameW, userW := 5, 24, 16
	emailW := w - idW - nameW - userW - 3*len(colGap)
	if emailW > 36 {
		emailW = 36
	}
	if emailW < 12 {
		emailW = 12
	}
	return []int{idW, nameW, userW, emailW}
}

func (s *usersScreen) viewPostsViewer() string {
	bodyW := modalBodyWidth(s.width) - 2

	var lines []string
	if len(s.viewerPosts) == 0 {
		lines = append(lines, styleMuted().Render("This user has no posts yet."))
	}
	for _, p := range s.viewerPosts {
		head := styleHeader().Render("#"+fmtInt(p.ID)) + styleMuted().Render("  userId: "+fmtInt(p.UserID))
		lines = append(lines, head)
		lines = append(lines, lipgloss.NewStyle().Bold(true).Width(bodyW).Render(p.Title))
		if body := renderMarkdown(p.Body, bodyW); body != "" {
			lines = append(lines, strings.Split(body, "\n")...)
		}
		lines = append(lines, "")
	}

	maxLines := s.height - 10
	if maxLines < 5 {
		maxLines = 5
	}
	if s.viewerScroll > len(lines)-maxLines {
		s.viewerScroll = len(lines) - maxLines
	}
	if s.viewerScroll < 0 {
		s.viewerScroll = 0
	}
	end := s.viewerScroll + maxLines
	if end > len(lines) {
		end = len(lines)
	}
	content := strings.Join(lines[s.viewerScroll:end], "\n")
	content += "\n" + styleMuted().Render("j/k: scroll   esc: close")

	return renderModalBox(s.width, s.height, "Posts by "+s.viewerUser.Name, content)
}
