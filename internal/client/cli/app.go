// Package cli is the plain-terminal screen layer: a REPL over the session
// and report stores, with guided prompts for creating reports.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/vozativa/vozativa/internal/client/device"
	"github.com/vozativa/vozativa/internal/client/models"
	"github.com/vozativa/vozativa/internal/client/store"
	"github.com/vozativa/vozativa/internal/logging"
)

// sessionOps is the slice of the session store the screens need.
type sessionOps interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context)
	State() store.SessionState
}

// reportOps is the slice of the report store the screens need.
type reportOps interface {
	Refresh(ctx context.Context) error
	Create(ctx context.Context, draft models.ReportDraft) error
	Delete(ctx context.Context, id string) error
	Clear()
	State() store.ReportsState
}

// App wires the stores and device capabilities into REPL commands.
type App struct {
	session  sessionOps
	reports  reportOps
	gallery  device.Gallery
	locator  device.Locator
	geocoder device.Geocoder
	mapURL   string

	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger
}

// Options carries the collaborators for NewApp. Out defaults to os.Stdout
// and In to os.Stdin.
type Options struct {
	Session  sessionOps
	Reports  reportOps
	Gallery  device.Gallery
	Locator  device.Locator
	Geocoder device.Geocoder
	MapURL   string
	In       io.Reader
	Out      io.Writer
	Log      logging.Logger
}

func NewApp(opts Options) *App {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}
	a := &App{
		session:  opts.Session,
		reports:  opts.Reports,
		gallery:  opts.Gallery,
		locator:  opts.Locator,
		geocoder: opts.Geocoder,
		mapURL:   opts.MapURL,
		reader:   bufio.NewReader(opts.In),
		out:      opts.Out,
		log:      opts.Log,
	}
	if a.gallery == nil {
		a.gallery = device.NewPathGallery(func() (string, error) {
			return getSimpleText(a.reader, "Enter photo file path (empty to skip)", a.out)
		})
	}
	return a
}

func (a *App) isLoggedIn() bool {
	return a.session.State().LoggedIn()
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.statusLine, scanner, a.out)
}

// statusLine is the prompt fragment showing who is logged in.
func (a *App) statusLine() string {
	st := a.session.State()
	if st.User != nil {
		return st.User.Name
	}
	return "anonymous"
}
