package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"panel-cli/internal/api"
	"panel-cli/internal/model"
	"panel-cli/internal/panel"
)

type postsFocus int

const (
	postsFocusRows postsFocus = iota
	postsFocusSearch
	postsFocusAdd
)

type postField int

const (
	postFieldTitle postField = iota
	postFieldBody
)

// postsScreen mirrors usersScreen for the Post entity. It owns its own store,
// toasts, gate, and edit session; the Users screen's posts viewer never feeds
// this store.
type postsScreen struct {
	client  *api.Client
	timeout time.Duration

	width  int
	height int

	store  panel.Store[model.Post]
	toasts *panel.Toasts
	edit   panel.EditSession[model.Post]
	gate   panel.ConfirmGate[model.Post]

	loading bool
	loadSeq int
	spin    spinner.Model

	focus  postsFocus
	cursor int

	search textinput.Model

	addTitle textinput.Model
	addBody  textarea.Model
	addFocus postField

	editTitle textinput.Model
	editBody  textarea.Model
	editFocus postField

	confirmFocus confirmFocus
}

func newPostTitleInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = model.MaxPostTitleLen
	ti.Width = 48
	return ti
}

func newPostBodyArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Body"
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	return ta
}

func newPostsScreen(client *api.Client, timeout time.Duration, width, height int) (*postsScreen, tea.Cmd) {
	s := &postsScreen{
		client:  client,
		timeout: timeout,
		width:   width,
		height:  height,
		toasts:  panel.NewToasts(),
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		search:  textinput.New(),
	}
	s.search.Placeholder = "Search posts…"
	s.search.Width = 32
	s.addTitle = newPostTitleInput()
	s.addBody = newPostBodyArea()
	s.editTitle = newPostTitleInput()
	s.editBody = newPostBodyArea()

	s.loading = true
	s.loadSeq = nextLoadSeq()
	return s, tea.Batch(s.spin.Tick, loadPostsCmd(client, timeout, s.loadSeq))
}

func (s *postsScreen) busy() bool {
	return s.gate.Open() || s.edit.Active() || s.focus != postsFocusRows
}

func (s *postsScreen) setSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *postsScreen) visible() []model.Post {
	return panel.Filter(s.store.Records(), s.search.Value())
}

func (s *postsScreen) clampCursor() {
	n := len(s.visible())
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *postsScreen) selected() (model.Post, bool) {
	rows := s.visible()
	if len(rows) == 0 || s.cursor >= len(rows) {
		return model.Post{}, false
	}
	return rows[s.cursor], true
}

func (s *postsScreen) toast(message string, kind panel.ToastKind) tea.Cmd {
	t := s.toasts.Push(message, kind)
	return expireToastCmd(t.ID)
}

func (s *postsScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.loading {
			return nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return cmd

	case toastExpiredMsg:
		s.toasts.Dismiss(msg.id)
		return nil

	case postsLoadedMsg:
		if msg.seq != s.loadSeq {
			return nil
		}
		s.loading = false
		if msg.err != nil {
			return s.toast("failed to load posts", panel.ToastError)
		}
		s.store.SetAll(msg.posts)
		s.clampCursor()
		return nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *postsScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case s.gate.Open():
		return s.handleConfirmKey(msg)
	case s.edit.Active():
		return s.handleEditKey(msg)
	case s.focus == postsFocusAdd:
		return s.handleAddKey(msg)
	case s.focus == postsFocusSearch:
		return s.handleSearchKey(msg)
	default:
		return s.handleRowsKey(msg)
	}
}

func (s *postsScreen) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
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

func (s *postsScreen) confirmDelete() tea.Cmd {
	target, ok := s.gate.Take()
	if !ok {
		return nil
	}
	removed, ok := s.store.Remove(target.ID)
	if !ok {
		return nil
	}
	s.clampCursor()
	return s.toast(removed.Label()+" deleted", panel.ToastSuccess)
}

func (s *postsScreen) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+enter", "ctrl+s":
		// Posts commit on ctrl+enter: a plain enter belongs to the body
		// textarea. (The Users screen commits on enter.)
		return s.saveEdit()
	case "esc":
		return s.cancelEdit()
	case "tab":
		s.focusEditField(s.nextField(s.editFocus))
		return nil
	case "shift+tab":
		s.focusEditField(s.nextField(s.editFocus))
		return nil
	}
	var cmd tea.Cmd
	if s.editFocus == postFieldTitle {
		s.editTitle, cmd = s.editTitle.Update(msg)
	} else {
		s.editBody, cmd = s.editBody.Update(msg)
	}
	return cmd
}

func (s *postsScreen) nextField(f postField) postField {
	if f == postFieldTitle {
		return postFieldBody
	}
	return postFieldTitle
}

func (s *postsScreen) focusEditField(f postField) {
	s.editFocus = f
	if f == postFieldTitle {
		s.editTitle.Focus()
		s.editBody.Blur()
	} else {
		s.editTitle.Blur()
		s.editBody.Focus()
	}
}

func (s *postsScreen) startEdit(p model.Post) {
	s.edit.Start(p)
	s.editTitle.SetValue(p.Title)
	s.editBody.SetValue(p.Body)
	s.focusEditField(postFieldTitle)
}

func (s *postsScreen) saveEdit() tea.Cmd {
	w := s.edit.Working()
	if w == nil {
		return nil
	}
	w.Title = s.editTitle.Value()
	w.Body = s.editBody.Value()

	if err := w.Validate(); err != nil {
		return s.toast(err.Error(), panel.ToastError)
	}

	s.store.Replace(*w)
	label := w.Label()
	s.edit.Finish()
	return s.toast(label+" updated", panel.ToastSuccess)
}

func (s *postsScreen) cancelEdit() tea.Cmd {
	s.edit.Discard()
	return s.toast("edit cancelled", panel.ToastInfo)
}

func (s *postsScreen) handleAddKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+enter", "ctrl+s":
		return s.submitAdd()
	case "esc":
		s.leaveAddForm()
		return nil
	case "tab":
		s.focusAddField(s.nextField(s.addFocus))
		return nil
	case "shift+tab":
		s.focusAddField(s.nextField(s.addFocus))
		return nil
	}
	var cmd tea.Cmd
	if s.addFocus == postFieldTitle {
		s.addTitle, cmd = s.addTitle.Update(msg)
	} else {
		s.addBody, cmd = s.addBody.Update(msg)
	}
	return cmd
}

func (s *postsScreen) focusAddField(f postField) {
	s.addFocus = f
	if f == postFieldTitle {
		s.addTitle.Focus()
		s.addBody.Blur()
	} else {
		s.addTitle.Blur()
		s.addBody.Focus()
	}
}

func (s *postsScreen) leaveAddForm() {
	s.focus = postsFocusRows
	s.addTitle.Blur()
	s.addBody.Blur()
}

func (s *postsScreen) submitAdd() tea.Cmd {
	// New posts default to userId 1, matching the remote source's first user.
	draft := model.Post{
		UserID: 1,
		Title:  s.addTitle.Value(),
		Body:   s.addBody.Value(),
	}
	if err := draft.Validate(); err != nil {
		return s.toast(err.Error(), panel.ToastError)
	}

	draft.ID = s.store.NextID()
	s.store.Append(draft)
	s.addTitle.SetValue("")
	s.addBody.SetValue("")
	s.focusAddField(postFieldTitle)
	return s.toast(draft.Label()+" added", panel.ToastSuccess)
}

func (s *postsScreen) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.search.SetValue("")
		s.search.Blur()
		s.focus = postsFocusRows
		s.clampCursor()
		return nil
	case "enter":
		s.search.Blur()
		s.focus = postsFocusRows
		return nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.clampCursor()
	return cmd
}

func (s *postsScreen) handleRowsKey(msg tea.KeyMsg) tea.Cmd {
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
		s.focus = postsFocusSearch
		s.search.Focus()
	case "a":
		s.focus = postsFocusAdd
		s.focusAddField(postFieldTitle)
	case "e":
		if p, ok := s.selected(); ok {
			s.startEdit(p)
		}
	case "d":
		if p, ok := s.selected(); ok {
			s.gate.Request(p)
			s.confirmFocus = confirmFocusCancel
		}
	case "r":
		s.loading = true
		s.loadSeq = nextLoadSeq()
		return tea.Batch(s.spin.Tick, loadPostsCmd(s.client, s.timeout, s.loadSeq))
	case "x":
		if t, ok := s.toasts.Oldest(); ok {
			s.toasts.Dismiss(t.ID)
		}
	}
	return nil
}

func (s *postsScreen) View() string {
	if s.gate.Open() {
		target := s.gate.Target()
		body := fmt.Sprintf("Are you sure you want to delete %s?", lipgloss.NewStyle().Bold(true).Render(target.Title))
		return renderConfirmModal(s.width, s.height, "Delete Post", body, s.confirmFocus)
	}

	var b strings.Builder

	b.WriteString(styleHeader().Render("Post Management"))
	b.WriteString("\n")

	if rail := renderToastRail(s.toasts); rail != "" {
		b.WriteString(rail)
		b.WriteString("\n")
	}

	b.WriteString(styleMuted().Render("search: "))
	b.WriteString(s.search.View())
	b.WriteString("\n\n")

	if s.focus == postsFocusAdd {
		b.WriteString(styleMuted().Render("new post  (ctrl+enter: add, tab: switch field, esc: back)"))
		b.WriteString("\n")
		b.WriteString(s.addTitle.View())
		b.WriteString("\n")
		b.WriteString(s.addBody.View())
		b.WriteString("\n\n")
	}

	if s.loading {
		b.WriteString(s.spin.View())
		b.WriteString(styleMuted().Render(" loading posts…"))
		b.WriteString("\n")
	} else {
		b.WriteString(s.viewTable())
	}

	if s.edit.Active() {
		b.WriteString("\n")
		b.WriteString(styleMuted().Render(fmt.Sprintf("editing post #%d  (ctrl+enter: save, esc: cancel)", (*s.edit.Working()).ID)))
		b.WriteString("\n")
		b.WriteString(s.editTitle.View())
		b.WriteString("\n")
		b.WriteString(s.editBody.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render(s.footerHelp()))
	return b.String()
}

func (s *postsScreen) footerHelp() string {
	if s.edit.Active() {
		return "ctrl+enter: save   esc: cancel   tab: switch field"
	}
	return "a: add   e: edit   d: delete   /: search   r: reload   esc: home   q: quit"
}

func (s *postsScreen) viewTable() string {
	widths := s.columnWidths()
	rows := s.visible()

	var b strings.Builder
	b.WriteString(renderHeaderRow([]string{"ID", "USER", "TITLE"}, widths))
	b.WriteString("\n")

	if len(rows) == 0 {
		if s.search.Value() != "" {
			b.WriteString(styleMuted().Render("no posts match your search"))
		} else {
			b.WriteString(styleMuted().Render("no posts yet"))
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
		p := rows[i]
		cells := []string{"#" + fmtInt(p.ID), fmtInt(p.UserID), p.Title}
		selected := s.focus == postsFocusRows && i == s.cursor && !s.edit.Active()
		if s.edit.Editing(p.ID) {
			cells[2] = s.editTitle.Value() + " (editing)"
		}
		b.WriteString(renderDataRow(cells, widths, selected))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *postsScreen) columnWidths() []int {
	w := s.width
	if w < 60 {
		w = 60
	}
	idW, userW := 6, 5
	titleW := w - idW - userW - 2*len(colGap)
	if titleW > 70 {
		titleW = 70
	}
	if titleW < 20 {
		titleW = 20
	}
	return []int{idW, userW, titleW}
}
