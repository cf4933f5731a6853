package store

import (
	"context"
	"errors"
	"sync"

	"github.com/vozativa/vozativa/internal/client/api"
	"github.com/vozativa/vozativa/internal/client/models"
	"github.com/vozativa/vozativa/internal/logging"
)

const (
	listFailedMsg   = "failed to load alerts"
	createFailedMsg = "failed to create alert"
	deleteFailedMsg = "failed to delete alert"
)

// TokenSource provides the bearer credential for authorized calls. The
// report store only ever reads it; the session store owns it.
type TokenSource interface {
	Token() string
}

// ReportsState is a snapshot of the report collection slice. Items is
// ordered most-recently-created first.
type ReportsState struct {
	Items  []models.Report
	Status Status
	Err    string
}

// ReportStore owns the list of incident reports belonging to the current
// session. The collection is scoped per session: call Clear whenever the
// session changes.
type ReportStore struct {
	mu    sync.Mutex
	lc    lifecycle
	items []models.Report
	api   api.Client
	auth  TokenSource
	log   logging.Logger
	notifier
}

func NewReportStore(client api.Client, auth TokenSource, log logging.Logger) *ReportStore {
	if log == nil {
		log = logging.Nop()
	}
	return &ReportStore{
		lc:   newLifecycle(),
		api:  client,
		auth: auth,
		log:  log,
	}
}

// State returns a snapshot; Items is a copy, safe to range over while
// operations run.
func (s *ReportStore) State() ReportsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.Report, len(s.items))
	copy(items, s.items)
	return ReportsState{Items: items, Status: s.lc.status, Err: s.lc.errMsg}
}

// Refresh replaces the whole collection with the server's list.
func (s *ReportStore) Refresh(ctx context.Context) error {
	seq := s.begin()

	reports, err := s.api.ListAlerts(ctx, s.auth.Token())
	if err != nil {
		return s.fail(ctx, seq, err, listFailedMsg)
	}

	s.mu.Lock()
	if s.lc.finish(seq, "") {
		s.items = reports
	}
	s.mu.Unlock()
	s.notify()
	s.log.Debug(ctx, "alerts refreshed", "count", len(reports))
	return nil
}

// Create validates the draft, submits it, and inserts the server-confirmed
// report at the front of the collection. Validation failures return before
// any state transition.
func (s *ReportStore) Create(ctx context.Context, draft models.ReportDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	seq := s.begin()

	report, err := s.api.CreateAlert(ctx, s.auth.Token(), draft)
	if err != nil {
		return s.fail(ctx, seq, err, createFailedMsg)
	}

	s.mu.Lock()
	if s.lc.finish(seq, "") {
		s.items = append([]models.Report{report}, s.items...)
	}
	s.mu.Unlock()
	s.notify()
	s.log.Info(ctx, "alert created", "id", report.ID, "category", report.Category)
	return nil
}

// Delete removes the report with the given id. Deleting an id that is not
// in the collection succeeds and leaves it unchanged.
func (s *ReportStore) Delete(ctx context.Context, id string) error {
	seq := s.begin()

	if err := s.api.DeleteAlert(ctx, s.auth.Token(), id); err != nil {
		return s.fail(ctx, seq, err, deleteFailedMsg)
	}

	s.mu.Lock()
	if s.lc.finish(seq, "") {
		for i, r := range s.items {
			if r.ID == id {
				s.items = append(s.items[:i], s.items[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()
	s.notify()
	s.log.Info(ctx, "alert deleted", "id", id)
	return nil
}

// Clear empties the collection and drops any in-flight operation. Called on
// session change so one user's reports never bleed into another session.
func (s *ReportStore) Clear() {
	s.mu.Lock()
	s.lc.invalidate()
	s.items = nil
	s.mu.Unlock()
	s.notify()
}

// ResetError dismisses the last failure without disturbing an in-flight
// operation.
func (s *ReportStore) ResetError() {
	s.mu.Lock()
	s.lc.reset()
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to run after every state change.
func (s *ReportStore) Subscribe(fn func()) { s.subscribe(fn) }

func (s *ReportStore) begin() uint64 {
	s.mu.Lock()
	seq := s.lc.begin()
	s.mu.Unlock()
	s.notify()
	return seq
}

func (s *ReportStore) fail(ctx context.Context, seq uint64, err error, fallback string) error {
	msg := api.ErrorMessage(err, fallback)
	s.mu.Lock()
	applied := s.lc.finish(seq, msg)
	s.mu.Unlock()
	if applied {
		s.notify()
	}
	s.log.Info(ctx, "report operation failed", "msg", msg, "err", err)
	return errors.New(msg)
}
