package store

import (
	"context"
	"errors"
	"sync"

	"github.com/vozativa/vozativa/internal/client/api"
	"github.com/vozativa/vozativa/internal/client/models"
	"github.com/vozativa/vozativa/internal/client/tokenstore"
	"github.com/vozativa/vozativa/internal/logging"
)

// Fallback messages for when the backend gives none.
const (
	loginFailedMsg    = "failed to sign in"
	registerFailedMsg = "failed to create account"
	sessionExpiredMsg = "session expired"
)

// SessionState is a snapshot of the authentication slice. Token and User are
// set and cleared together: User != nil exactly when Token != "".
type SessionState struct {
	Token  string
	User   *models.User
	Status Status
	Err    string
}

// LoggedIn reports whether the snapshot holds an authenticated session.
func (s SessionState) LoggedIn() bool { return s.Token != "" }

// SessionStore owns the current authentication token and user profile and
// persists the token through the secure slot.
type SessionStore struct {
	mu     sync.Mutex
	lc     lifecycle
	token  string
	user   *models.User
	api    api.Client
	tokens tokenstore.Store
	log    logging.Logger
	notifier
}

func NewSessionStore(client api.Client, tokens tokenstore.Store, log logging.Logger) *SessionStore {
	if log == nil {
		log = logging.Nop()
	}
	return &SessionStore{
		lc:     newLifecycle(),
		api:    client,
		tokens: tokens,
		log:    log,
	}
}

// State returns a snapshot; the User pointer is a copy, safe to hold.
func (s *SessionStore) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := SessionState{Token: s.token, Status: s.lc.status, Err: s.lc.errMsg}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// Token is the read-only accessor the report store authorizes its calls
// with. Returns "" when unauthenticated.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Login validates credentials, then exchanges them for a session. Validation
// failures return before any state transition. The returned error always
// carries a renderable message.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	if err := models.ValidateLogin(email, password); err != nil {
		return err
	}
	seq := s.begin()

	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return s.fail(ctx, seq, err, loginFailedMsg)
	}
	return s.establish(ctx, seq, sess, loginFailedMsg)
}

// Register validates the form, creates the account, and establishes the
// returned session exactly like Login.
func (s *SessionStore) Register(ctx context.Context, name, email, password string) error {
	if err := models.ValidateRegistration(name, email, password); err != nil {
		return err
	}
	seq := s.begin()

	sess, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return s.fail(ctx, seq, err, registerFailedMsg)
	}
	return s.establish(ctx, seq, sess, registerFailedMsg)
}

// Restore rebuilds the session from the persisted token at startup.
// No persisted token is a normal outcome: the store stays empty and idle.
// A persisted token the server no longer accepts is erased, and the
// operation fails with a "session expired" message.
func (s *SessionStore) Restore(ctx context.Context) error {
	seq := s.begin()

	token, err := s.tokens.Get(ctx)
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNoToken) {
			s.log.Warn(ctx, "token read failed, treating as logged out", "err", err)
		}
		s.mu.Lock()
		if s.lc.finish(seq, "") {
			s.token, s.user = "", nil
		}
		s.mu.Unlock()
		s.notify()
		return nil
	}

	user, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			s.log.Warn(ctx, "stale token cleanup failed", "err", clearErr)
		}
		s.mu.Lock()
		if s.lc.finish(seq, sessionExpiredMsg) {
			s.token, s.user = "", nil
		}
		s.mu.Unlock()
		s.notify()
		s.log.Info(ctx, "session restore rejected", "err", err)
		return errors.New(sessionExpiredMsg)
	}

	s.mu.Lock()
	if s.lc.finish(seq, "") {
		s.token, s.user = token, &user
	}
	s.mu.Unlock()
	s.notify()
	s.log.Info(ctx, "session restored", "user", user.Email)
	return nil
}

// Logout clears the session unconditionally and erases the persisted token.
// It never fails user-visibly; an in-flight operation's completion is
// discarded so it cannot resurrect the session.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.lc.invalidate()
	s.token, s.user = "", nil
	s.mu.Unlock()
	s.notify()

	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Warn(ctx, "token erase failed on logout", "err", err)
	}
}

// ResetError dismisses the last failure without disturbing an in-flight
// operation.
func (s *SessionStore) ResetError() {
	s.mu.Lock()
	s.lc.reset()
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to run after every state change.
func (s *SessionStore) Subscribe(fn func()) { s.subscribe(fn) }

func (s *SessionStore) begin() uint64 {
	s.mu.Lock()
	seq := s.lc.begin()
	s.mu.Unlock()
	s.notify()
	return seq
}

func (s *SessionStore) fail(ctx context.Context, seq uint64, err error, fallback string) error {
	msg := api.ErrorMessage(err, fallback)
	s.mu.Lock()
	applied := s.lc.finish(seq, msg)
	s.mu.Unlock()
	if applied {
		s.notify()
	}
	s.log.Info(ctx, "session operation failed", "msg", msg, "err", err)
	return errors.New(msg)
}

// establish persists the token and installs token+user atomically. A persist
// failure fails the whole operation: better to ask the user to sign in again
// than to hold a session that will silently vanish on restart.
func (s *SessionStore) establish(ctx context.Context, seq uint64, sess api.Session, fallback string) error {
	if err := s.tokens.Set(ctx, sess.Token); err != nil {
		return s.fail(ctx, seq, err, fallback)
	}

	s.mu.Lock()
	if s.lc.finish(seq, "") {
		user := sess.User
		s.token, s.user = sess.Token, &user
	}
	s.mu.Unlock()
	s.notify()
	s.log.Info(ctx, "session established", "user", sess.User.Email)
	return nil
}
