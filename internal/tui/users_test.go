package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"panel-cli/internal/api"
	"panel-cli/internal/model"
	"panel-cli/internal/panel"
)

func testUsers() []model.User {
	return []model.User{
		{ID: 1, Name: "Ada Lovelace", Username: "ada", Email: "ada@engine.dev"},
		{ID: 3, Name: "Grace Hopper", Username: "ghopper", Email: "grace@navy.mil"},
	}
}

func newTestUsersScreen(t *testing.T) *usersScreen {
	t.Helper()
	s, _ := newUsersScreen(api.New("http://127.0.0.1:1"), time.Second, 80, 24)
	s.Update(usersLoadedMsg{seq: s.loadSeq, users: testUsers()})
	if s.loading {
		t.Fatalf("screen still loading after load message")
	}
	return s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestUsersLoadFailureTogglesLoadingAndToasts(t *testing.T) {
	s, _ := newUsersScreen(api.New("http://127.0.0.1:1"), time.Second, 80, 24)
	s.Update(usersLoadedMsg{seq: s.loadSeq, err: errors.New("boom")})
	if s.loading {
		t.Fatalf("loading flag must clear on failure")
	}
	if s.store.Len() != 0 {
		t.Fatalf("store must stay empty on failure")
	}
	if s.toasts.Len() != 1 {
		t.Fatalf("expected one error toast, got %d", s.toasts.Len())
	}
	if toast, _ := s.toasts.Oldest(); toast.Kind != panel.ToastError {
		t.Fatalf("toast kind = %v, want error", toast.Kind)
	}
}

func TestUsersStaleLoadResultIgnored(t *testing.T) {
	s := newTestUsersScreen(t)
	// A result from a superseded fetch must not clobber the store.
	s.Update(usersLoadedMsg{seq: s.loadSeq - 1, users: nil})
	if s.store.Len() != 2 {
		t.Fatalf("stale result mutated store: len=%d", s.store.Len())
	}
}

func TestUsersAddAssignsNextID(t *testing.T) {
	s := newTestUsersScreen(t)

	// Store ids are [1,3]; the next assigned id must be 4.
	s.addInputs[userFieldName].SetValue("Katherine Johnson")
	s.addInputs[userFieldUsername].SetValue("kjohnson")
	s.addInputs[userFieldEmail].SetValue("kj@nasa.gov")
	s.Update(key("a")) // enter add form
	cmd := s.submitAdd()
	if cmd == nil {
		t.Fatalf("successful add must schedule a toast expiry")
	}

	if s.store.Len() != 3 {
		t.Fatalf("store len = %d, want 3", s.store.Len())
	}
	added, ok := s.store.Find(4)
	if !ok || added.Name != "Katherine Johnson" {
		t.Fatalf("added record: %+v ok=%v", added, ok)
	}
	if s.addInputs[userFieldName].Value() != "" {
		t.Fatalf("form buffer must reset after a successful add")
	}
	if toast, _ := s.toasts.Oldest(); toast.Kind != panel.ToastSuccess {
		t.Fatalf("expected success toast, got %+v", toast)
	}
}

func TestUsersAddValidationFailureLeavesStoreUnchanged(t *testing.T) {
	s := newTestUsersScreen(t)

	s.addInputs[userFieldName].SetValue("No Email")
	s.addInputs[userFieldUsername].SetValue("nomail")
	// Email left empty.
	s.submitAdd()

	if s.store.Len() != 2 {
		t.Fatalf("failed add must not mutate store: len=%d", s.store.Len())
	}
	if s.toasts.Len() != 1 {
		t.Fatalf("expected exactly one error toast, got %d", s.toasts.Len())
	}
	if s.addInputs[userFieldName].Value() != "No Email" {
		t.Fatalf("form buffer must be preserved on failure")
	}
}

func TestUsersEditBadEmailKeepsSessionAndStore(t *testing.T) {
	s := newTestUsersScreen(t)

	s.cursor = 1 // Grace, id 3
	s.Update(key("e"))
	if !s.edit.Editing(3) {
		t.Fatalf("expected edit session on id 3")
	}

	s.editInputs[userFieldEmail].SetValue("bad-email")
	s.Update(key("enter")) // users commit on plain enter

	if !s.edit.Active() {
		t.Fatalf("session must stay editing after validation failure")
	}
	if s.edit.Working().Email != "bad-email" {
		t.Fatalf("working copy must keep the invalid value, got %q", s.edit.Working().Email)
	}
	if u, _ := s.store.Find(3); u.Email != "grace@navy.mil" {
		t.Fatalf("store must be unchanged, got %q", u.Email)
	}
	if toast, _ := s.toasts.Oldest(); toast.Kind != panel.ToastError {
		t.Fatalf("expected error toast, got %+v", toast)
	}
}

func TestUsersEditCommitAndCancel(t *testing.T) {
	s := newTestUsersScreen(t)

	s.Update(key("e")) // edit Ada (cursor 0)
	s.editInputs[userFieldName].SetValue("Ada King")
	s.Update(key("enter"))
	if s.edit.Active() {
		t.Fatalf("commit must end the edit session")
	}
	if u, _ := s.store.Find(1); u.Name != "Ada King" {
		t.Fatalf("store not updated: %+v", u)
	}

	// Cancel never mutates the store.
	s.Update(key("e"))
	s.editInputs[userFieldName].SetValue("Scribble")
	s.Update(key("esc"))
	if s.edit.Active() {
		t.Fatalf("esc must discard the edit")
	}
	if u, _ := s.store.Find(1); u.Name != "Ada King" {
		t.Fatalf("cancel mutated the store: %+v", u)
	}
	items := s.toasts.Items()
	if len(items) == 0 || items[len(items)-1].Kind != panel.ToastInfo {
		t.Fatalf("cancel must push an info toast, got %+v", items)
	}
}

func TestUsersDeleteConfirmAndCancel(t *testing.T) {
	s := newTestUsersScreen(t)

	s.Update(key("d"))
	if !s.gate.Open() {
		t.Fatalf("d must open the confirmation gate")
	}

	// Esc cancels with no mutation.
	s.Update(key("esc"))
	if s.gate.Open() || s.store.Len() != 2 {
		t.Fatalf("cancel must close gate and keep store: open=%v len=%d", s.gate.Open(), s.store.Len())
	}

	// Tab to the delete button, then confirm.
	s.Update(key("d"))
	s.Update(key("tab"))
	s.Update(key("enter"))
	if s.gate.Open() {
		t.Fatalf("confirm must close the gate")
	}
	if s.store.Len() != 1 {
		t.Fatalf("store len after delete = %d, want 1", s.store.Len())
	}
	if _, ok := s.store.Find(1); ok {
		t.Fatalf("deleted record still present")
	}
}

func TestUsersSearchFiltersRows(t *testing.T) {
	s := newTestUsersScreen(t)

	s.search.SetValue("hopper")
	rows := s.visible()
	if len(rows) != 1 || rows[0].ID != 3 {
		t.Fatalf("filtered rows = %+v", rows)
	}

	s.cursor = 5
	s.clampCursor()
	if s.cursor != 0 {
		t.Fatalf("cursor must clamp to visible rows, got %d", s.cursor)
	}
}

func TestUsersPostsViewerLifecycle(t *testing.T) {
	s := newTestUsersScreen(t)

	s.Update(key("p"))
	if !s.viewerLoading {
		t.Fatalf("p must start the posts lookup")
	}

	posts := []model.Post{{UserID: 1, ID: 10, Title: "T", Body: "B"}}
	s.Update(userPostsMsg{seq: s.viewerSeq, user: testUsers()[0], posts: posts})
	if !s.viewerOpen || len(s.viewerPosts) != 1 {
		t.Fatalf("viewer not opened: open=%v posts=%d", s.viewerOpen, len(s.viewerPosts))
	}

	// The lookup never feeds the entity store.
	if s.store.Len() != 2 {
		t.Fatalf("posts lookup must not touch the user store")
	}

	s.Update(key("esc"))
	if s.viewerOpen {
		t.Fatalf("esc must close the viewer")
	}
}

func TestUsersToastExpiryIsIdempotent(t *testing.T) {
	s := newTestUsersScreen(t)

	cmd := s.toast("hello", panel.ToastInfo)
	if cmd == nil {
		t.Fatalf("toast must schedule expiry")
	}
	toast, _ := s.toasts.Oldest()

	// Manual dismissal first, then the timer fires anyway.
	s.Update(key("x"))
	if s.toasts.Len() != 0 {
		t.Fatalf("x must dismiss the oldest toast")
	}
	s.Update(toastExpiredMsg{id: toast.ID})
	if s.toasts.Len() != 0 {
		t.Fatalf("late expiry must be a no-op")
	}
}
