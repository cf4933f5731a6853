package store

import (
	"context"
	"errors"
	"testing"

	"github.com/vozativa/vozativa/internal/client/api"
	"github.com/vozativa/vozativa/internal/client/models"
)

// fakeAPI implements api.Client with per-method function fields; nil fields
// report an unexpected call.
type fakeAPI struct {
	t *testing.T

	loginFn    func(ctx context.Context, email, password string) (api.Session, error)
	registerFn func(ctx context.Context, name, email, password string) (api.Session, error)
	currentFn  func(ctx context.Context, token string) (models.User, error)
	listFn     func(ctx context.Context, token string) ([]models.Report, error)
	createFn   func(ctx context.Context, token string, draft models.ReportDraft) (models.Report, error)
	deleteFn   func(ctx context.Context, token, id string) error
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (api.Session, error) {
	if f.loginFn == nil {
		f.t.Fatal("unexpected Login call")
	}
	return f.loginFn(ctx, email, password)
}

func (f *fakeAPI) Register(ctx context.Context, name, email, password string) (api.Session, error) {
	if f.registerFn == nil {
		f.t.Fatal("unexpected Register call")
	}
	return f.registerFn(ctx, name, email, password)
}

func (f *fakeAPI) CurrentUser(ctx context.Context, token string) (models.User, error) {
	if f.currentFn == nil {
		f.t.Fatal("unexpected CurrentUser call")
	}
	return f.currentFn(ctx, token)
}

func (f *fakeAPI) ListAlerts(ctx context.Context, token string) ([]models.Report, error) {
	if f.listFn == nil {
		f.t.Fatal("unexpected ListAlerts call")
	}
	return f.listFn(ctx, token)
}

func (f *fakeAPI) CreateAlert(ctx context.Context, token string, draft models.ReportDraft) (models.Report, error) {
	if f.createFn == nil {
		f.t.Fatal("unexpected CreateAlert call")
	}
	return f.createFn(ctx, token, draft)
}

func (f *fakeAPI) DeleteAlert(ctx context.Context, token, id string) error {
	if f.deleteFn == nil {
		f.t.Fatal("unexpected DeleteAlert call")
	}
	return f.deleteFn(ctx, token, id)
}

// staticToken is a TokenSource with a fixed credential.
type staticToken string

func (s staticToken) Token() string { return string(s) }

func backendErr(status int, msg string) error {
	return &api.BackendError{StatusCode: status, Message: msg}
}

var errBoom = errors.New("boom")
