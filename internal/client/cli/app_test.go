package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/vozativa/vozativa/internal/client/models"
	"github.com/vozativa/vozativa/internal/client/store"
)

type fakeSession struct {
	state store.SessionState

	loginEmail  string
	loginPass   string
	loginErr    error
	regName     string
	regEmail    string
	regPass     string
	regErr      error
	logoutCalls int
}

func (f *fakeSession) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr == nil {
		f.state = store.SessionState{Token: "t", User: &models.User{Name: "Ana", Email: email}}
	}
	return f.loginErr
}

func (f *fakeSession) Register(_ context.Context, name, email, password string) error {
	f.regName, f.regEmail, f.regPass = name, email, password
	if f.regErr == nil {
		f.state = store.SessionState{Token: "t", User: &models.User{Name: name, Email: email}}
	}
	return f.regErr
}

func (f *fakeSession) Logout(context.Context) {
	f.logoutCalls++
	f.state = store.SessionState{}
}

func (f *fakeSession) State() store.SessionState { return f.state }

type fakeReports struct {
	state store.ReportsState

	refreshErr error
	createErr  error
	deleteErr  error

	created    []models.ReportDraft
	deletedIDs []string
	clearCalls int
}

func (f *fakeReports) Refresh(context.Context) error { return f.refreshErr }

func (f *fakeReports) Create(_ context.Context, draft models.ReportDraft) error {
	if f.createErr == nil {
		f.created = append(f.created, draft)
	}
	return f.createErr
}

func (f *fakeReports) Delete(_ context.Context, id string) error {
	if f.deleteErr == nil {
		f.deletedIDs = append(f.deletedIDs, id)
	}
	return f.deleteErr
}

func (f *fakeReports) Clear() { f.clearCalls++ }

func (f *fakeReports) State() store.ReportsState { return f.state }

// stubTextInputs replaces getSimpleText with a script of answers consumed
// in order, and getPassword/getYesNo with fixed values.
func stubTextInputs(t *testing.T, answers []string, password string, yes bool) {
	t.Helper()
	origST, origGP, origYN := getSimpleText, getPassword, getYesNo
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			t.Fatalf("unexpected extra prompt")
		}
		a := answers[i]
		i++
		return a, nil
	}
	getPassword = func(_ io.Writer) (string, error) { return password, nil }
	getYesNo = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) { return yes, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
		getYesNo = origYN
	})
}

func newTestApp(session *fakeSession, reports *fakeReports) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	a := NewApp(Options{Session: session, Reports: reports, Out: &out})
	return a, &out
}

func TestStatusLine(t *testing.T) {
	s := &fakeSession{}
	a, _ := newTestApp(s, &fakeReports{})

	if got := a.statusLine(); got != "anonymous" {
		t.Fatalf("statusLine = %q, want anonymous", got)
	}

	s.state = store.SessionState{Token: "t", User: &models.User{Name: "Ana"}}
	if got := a.statusLine(); got != "Ana" {
		t.Fatalf("statusLine = %q, want Ana", got)
	}
}
