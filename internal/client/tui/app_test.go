package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vozativa/vozativa/internal/client/models"
	"github.com/vozativa/vozativa/internal/client/store"
)

type fakeSession struct {
	state    store.SessionState
	loginErr error
}

func (f *fakeSession) Login(_ context.Context, email, _ string) error {
	if f.loginErr == nil {
		f.state = store.SessionState{Token: "t", User: &models.User{Name: "Ana", Email: email}}
	}
	return f.loginErr
}

func (f *fakeSession) Register(_ context.Context, name, email, _ string) error {
	f.state = store.SessionState{Token: "t", User: &models.User{Name: name, Email: email}}
	return nil
}

func (f *fakeSession) Logout(context.Context)    { f.state = store.SessionState{} }
func (f *fakeSession) State() store.SessionState { return f.state }

type fakeReports struct {
	state      store.ReportsState
	created    []models.ReportDraft
	deletedIDs []string
	clearCalls int
}

func (f *fakeReports) Refresh(context.Context) error { return nil }
func (f *fakeReports) Create(_ context.Context, d models.ReportDraft) error {
	f.created = append(f.created, d)
	return nil
}
func (f *fakeReports) Delete(_ context.Context, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}
func (f *fakeReports) Clear()                    { f.clearCalls++ }
func (f *fakeReports) State() store.ReportsState { return f.state }

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNewModel_StartsOnAuthWhenLoggedOut(t *testing.T) {
	m := NewModel(Options{Session: &fakeSession{}, Reports: &fakeReports{}})
	if m.mode != modeAuth {
		t.Fatalf("mode = %d, want modeAuth", m.mode)
	}
	if m.Init() != nil {
		t.Fatalf("Init should be a no-op while logged out")
	}
}

func TestNewModel_StartsOnListWhenRestored(t *testing.T) {
	s := &fakeSession{state: store.SessionState{Token: "t", User: &models.User{Name: "Ana"}}}
	m := NewModel(Options{Session: s, Reports: &fakeReports{}})
	if m.mode != modeList {
		t.Fatalf("mode = %d, want modeList", m.mode)
	}
	if m.Init() == nil {
		t.Fatalf("Init should refresh when already logged in")
	}
}

func TestAuthFlow_LoginMovesToList(t *testing.T) {
	s := &fakeSession{}
	r := &fakeReports{}
	m := NewModel(Options{Session: s, Reports: r})

	next, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatalf("enter should dispatch the login command")
	}

	msg := cmd()
	done, ok := msg.(authDoneMsg)
	if !ok {
		t.Fatalf("msg = %T, want authDoneMsg", msg)
	}

	next, cmd = next.(Model).Update(done)
	got := next.(Model)
	if got.mode != modeList {
		t.Fatalf("mode = %d, want modeList", got.mode)
	}
	if r.clearCalls != 1 {
		t.Fatalf("reports not re-scoped after login")
	}
	if cmd == nil {
		t.Fatalf("login should trigger a refresh")
	}
	if !strings.Contains(got.notice, "Welcome, Ana") {
		t.Fatalf("notice = %q", got.notice)
	}
}

func TestAuthFlow_FailureShowsStoreMessage(t *testing.T) {
	s := &fakeSession{loginErr: errors.New("boom")}
	s.state.Err = "failed to sign in"
	m := NewModel(Options{Session: s, Reports: &fakeReports{}})

	_, cmd := m.Update(key("enter"))
	next, _ := m.Update(cmd())

	got := next.(Model)
	if got.mode != modeAuth {
		t.Fatalf("mode = %d, want modeAuth", got.mode)
	}
	if got.errMsg != "failed to sign in" {
		t.Fatalf("errMsg = %q", got.errMsg)
	}
}

func TestList_DeleteSelected(t *testing.T) {
	s := &fakeSession{state: store.SessionState{Token: "t", User: &models.User{Name: "Ana"}}}
	r := &fakeReports{state: store.ReportsState{Items: []models.Report{
		{ID: "r1", Category: models.CategoryFallenTree, Description: "tree"},
		{ID: "r2", Category: models.CategoryAccident, Description: "crash"},
	}}}
	m := NewModel(Options{Session: s, Reports: r})

	next, _ := m.Update(key("j"))
	next, cmd := next.(Model).Update(key("d"))
	if cmd == nil {
		t.Fatalf("delete command not dispatched")
	}
	cmd()

	if len(r.deletedIDs) != 1 || r.deletedIDs[0] != "r2" {
		t.Fatalf("deleted = %v", r.deletedIDs)
	}
	_ = next
}

func TestReportForm_SubmitCreatesDraft(t *testing.T) {
	s := &fakeSession{state: store.SessionState{Token: "t", User: &models.User{Name: "Ana"}}}
	r := &fakeReports{}
	m := NewModel(Options{Session: s, Reports: r})

	next, _ := m.Update(key("n"))
	got := next.(Model)
	if got.mode != modeNew {
		t.Fatalf("mode = %d, want modeNew", got.mode)
	}

	// pick the second category, leave everything else default
	next, _ = got.Update(key("l"))
	next, cmd := next.(Model).Update(key("enter"))
	if cmd == nil {
		t.Fatalf("submit command not dispatched")
	}

	msg := cmd()
	if _, ok := msg.(createDoneMsg); !ok {
		t.Fatalf("msg = %T, want createDoneMsg", msg)
	}
	if len(r.created) != 1 {
		t.Fatalf("created = %d", len(r.created))
	}
	if r.created[0].Category != models.CategoryAccident {
		t.Fatalf("category = %q", r.created[0].Category)
	}

	next, _ = next.(Model).Update(msg)
	if next.(Model).mode != modeList {
		t.Fatalf("submit should return to the list")
	}
}

func TestProfile_LogoutReturnsToAuth(t *testing.T) {
	s := &fakeSession{state: store.SessionState{Token: "t", User: &models.User{Name: "Ana"}}}
	r := &fakeReports{}
	m := NewModel(Options{Session: s, Reports: r})

	next, _ := m.Update(key("p"))
	next, _ = next.(Model).Update(key("l"))

	got := next.(Model)
	if got.mode != modeAuth {
		t.Fatalf("mode = %d, want modeAuth", got.mode)
	}
	if s.state.LoggedIn() {
		t.Fatalf("session not cleared")
	}
	if r.clearCalls != 1 {
		t.Fatalf("reports not cleared on logout")
	}
}
