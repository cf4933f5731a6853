// Package api implements the REST client for the Voz Ativa service: the
// auth endpoints (login, register, current user) and the alert endpoints
// (list, create with multipart photo upload, delete).
package api

import (
	"context"

	"github.com/vozativa/vozativa/internal/client/models"
)

// Session is the login/register success payload.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Client defines the remote operations the stores depend on.
//
// All methods honor context cancellation. The token parameter is the opaque
// bearer credential held by the session store; the client never inspects it.
type Client interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Register(ctx context.Context, name, email, password string) (Session, error)
	CurrentUser(ctx context.Context, token string) (models.User, error)

	ListAlerts(ctx context.Context, token string) ([]models.Report, error)
	CreateAlert(ctx context.Context, token string, draft models.ReportDraft) (models.Report, error)
	DeleteAlert(ctx context.Context, token string, id string) error
}
