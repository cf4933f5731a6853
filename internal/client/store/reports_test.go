package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vozativa/vozativa/internal/client/models"
)

func newReportStore(t *testing.T, f *fakeAPI) *ReportStore {
	t.Helper()
	f.t = t
	return NewReportStore(f, staticToken("t1"), nil)
}

func seedReports(t *testing.T, s *ReportStore, reports ...models.Report) {
	t.Helper()
	f := s.api.(*fakeAPI)
	orig := f.listFn
	f.listFn = func(context.Context, string) ([]models.Report, error) {
		return reports, nil
	}
	require.NoError(t, s.Refresh(context.Background()))
	f.listFn = orig
}

func TestReportStore_Refresh_ReplacesCollection(t *testing.T) {
	f := &fakeAPI{
		listFn: func(_ context.Context, token string) ([]models.Report, error) {
			assert.Equal(t, "t1", token)
			return []models.Report{{ID: "1"}, {ID: "2"}}, nil
		},
	}
	s := newReportStore(t, f)

	require.NoError(t, s.Refresh(context.Background()))

	st := s.State()
	require.Len(t, st.Items, 2)
	assert.Equal(t, StatusIdle, st.Status)

	// A second refresh replaces, never merges.
	f.listFn = func(context.Context, string) ([]models.Report, error) {
		return []models.Report{{ID: "9"}}, nil
	}
	require.NoError(t, s.Refresh(context.Background()))
	st = s.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, "9", st.Items[0].ID)
}

func TestReportStore_Refresh_Failure(t *testing.T) {
	f := &fakeAPI{
		listFn: func(context.Context, string) ([]models.Report, error) {
			return nil, errBoom
		},
	}
	s := newReportStore(t, f)
	seedReports(t, s, models.Report{ID: "1"})

	err := s.Refresh(context.Background())
	require.EqualError(t, err, "failed to load alerts")

	st := s.State()
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, "failed to load alerts", st.Err)
	// Failure leaves previously-known-good data untouched.
	require.Len(t, st.Items, 1)
	assert.Equal(t, "1", st.Items[0].ID)
}

func TestReportStore_Create_InsertsAtFront(t *testing.T) {
	f := &fakeAPI{
		createFn: func(_ context.Context, token string, draft models.ReportDraft) (models.Report, error) {
			assert.Equal(t, "t1", token)
			return models.Report{ID: "new", Category: draft.Category, Description: draft.Description}, nil
		},
	}
	s := newReportStore(t, f)
	seedReports(t, s, models.Report{ID: "old-1"}, models.Report{ID: "old-2"})

	draft := models.ReportDraft{Category: models.CategoryAccident, Description: "two cars"}
	require.NoError(t, s.Create(context.Background(), draft))

	st := s.State()
	require.Len(t, st.Items, 3)
	assert.Equal(t, "new", st.Items[0].ID)
	assert.Equal(t, "old-1", st.Items[1].ID)
	assert.Equal(t, StatusIdle, st.Status)
}

func TestReportStore_Create_EmptyDescriptionNeverTransitions(t *testing.T) {
	// No createFn: a network call would fail the test.
	s := newReportStore(t, &fakeAPI{})

	err := s.Create(context.Background(), models.ReportDraft{Description: "   "})
	require.Error(t, err)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StatusIdle, s.State().Status)
}

func TestReportStore_Create_ValidationKeepsPriorFailure(t *testing.T) {
	f := &fakeAPI{
		listFn: func(context.Context, string) ([]models.Report, error) {
			return nil, errBoom
		},
	}
	s := newReportStore(t, f)
	_ = s.Refresh(context.Background())
	require.Equal(t, StatusFailed, s.State().Status)

	// Rejected client-side: status remains whatever it was before.
	_ = s.Create(context.Background(), models.ReportDraft{Description: ""})
	assert.Equal(t, StatusFailed, s.State().Status)
}

func TestReportStore_Delete_IsIdempotent(t *testing.T) {
	f := &fakeAPI{
		deleteFn: func(_ context.Context, _, id string) error { return nil },
	}
	s := newReportStore(t, f)
	seedReports(t, s, models.Report{ID: "1"}, models.Report{ID: "2"})

	require.NoError(t, s.Delete(context.Background(), "1"))
	st := s.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, "2", st.Items[0].ID)

	// Deleting the same id again leaves the collection unchanged.
	require.NoError(t, s.Delete(context.Background(), "1"))
	st = s.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, "2", st.Items[0].ID)
	assert.Equal(t, StatusIdle, st.Status)
}

func TestReportStore_Delete_Failure(t *testing.T) {
	f := &fakeAPI{
		deleteFn: func(context.Context, string, string) error {
			return backendErr(403, "not your report")
		},
	}
	s := newReportStore(t, f)
	seedReports(t, s, models.Report{ID: "1"})

	err := s.Delete(context.Background(), "1")
	require.EqualError(t, err, "not your report")

	st := s.State()
	assert.Equal(t, StatusFailed, st.Status)
	require.Len(t, st.Items, 1)
}

func TestReportStore_Clear_ScopesCollectionToSession(t *testing.T) {
	s := newReportStore(t, &fakeAPI{})
	seedReports(t, s, models.Report{ID: "1"})

	s.Clear()

	st := s.State()
	assert.Empty(t, st.Items)
	assert.Equal(t, StatusIdle, st.Status)
	assert.Empty(t, st.Err)
}

func TestReportStore_OverlappingRefresh_LastDispatchedWins(t *testing.T) {
	ctx := context.Background()
	firstEntered := make(chan struct{})
	firstRelease := make(chan struct{})

	var mu sync.Mutex
	call := 0
	f := &fakeAPI{
		listFn: func(context.Context, string) ([]models.Report, error) {
			mu.Lock()
			call++
			n := call
			mu.Unlock()
			if n == 1 {
				close(firstEntered)
				<-firstRelease
				return []models.Report{{ID: "stale"}}, nil
			}
			return []models.Report{{ID: "fresh"}}, nil
		},
	}
	s := newReportStore(t, f)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Refresh(ctx)
	}()

	<-firstEntered
	// Second refresh dispatched while the first is still in flight; it
	// completes first.
	require.NoError(t, s.Refresh(ctx))

	// Now the first (stale) response lands and must be dropped.
	close(firstRelease)
	wg.Wait()

	st := s.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, "fresh", st.Items[0].ID)
	assert.Equal(t, StatusIdle, st.Status)
}

func TestReportStore_StateReturnsCopy(t *testing.T) {
	s := newReportStore(t, &fakeAPI{})
	seedReports(t, s, models.Report{ID: "1", Description: "orig"})

	st := s.State()
	st.Items[0].Description = "mutated"

	assert.Equal(t, "orig", s.State().Items[0].Description)
}
