// Package tui is the full-screen terminal frontend: an alert list with
// guided forms for signing in and reporting problems, built on bubbletea.
package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vozativa/vozativa/internal/client/device"
	"github.com/vozativa/vozativa/internal/client/models"
	"github.com/vozativa/vozativa/internal/client/store"
	"github.com/vozativa/vozativa/internal/logging"
)

type mode int

const (
	modeAuth mode = iota
	modeList
	modeNew
	modeProfile
)

type sessionOps interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context)
	State() store.SessionState
}

type reportOps interface {
	Refresh(ctx context.Context) error
	Create(ctx context.Context, draft models.ReportDraft) error
	Delete(ctx context.Context, id string) error
	Clear()
	State() store.ReportsState
}

// Store operations finish off the Update loop; each done message carries
// the operation error so Update can refresh the snapshot it renders from.
type authDoneMsg struct{ err error }

type refreshDoneMsg struct{ err error }

type createDoneMsg struct{ err error }

type deleteDoneMsg struct{ err error }

// openURL is a test seam for launching the system browser.
var openURL = func(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

// Options carries the collaborators for NewModel.
type Options struct {
	Session  sessionOps
	Reports  reportOps
	Locator  device.Locator
	Geocoder device.Geocoder
	MapURL   string
	Log      logging.Logger
}

type Model struct {
	session  sessionOps
	reports  reportOps
	locator  device.Locator
	geocoder device.Geocoder
	mapURL   string
	log      logging.Logger

	mode       mode
	authForm   authForm
	reportForm *reportForm

	cursor   int
	offset   int
	width    int
	height   int
	busy     bool
	notice   string
	errMsg   string
	quitting bool
}

func NewModel(opts Options) Model {
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}
	m := Model{
		session:  opts.Session,
		reports:  opts.Reports,
		locator:  opts.Locator,
		geocoder: opts.Geocoder,
		mapURL:   opts.MapURL,
		log:      opts.Log,
		authForm: newAuthForm(),
		width:    100,
		height:   30,
	}
	if m.session.State().LoggedIn() {
		m.mode = modeList
	}
	return m
}

// Run starts the program in the alternate screen and blocks until quit.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	if m.mode == modeList {
		return m.refreshCmd()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = m.stateError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notice = "Welcome, " + m.userName() + "!"
		m.mode = modeList
		m.reports.Clear()
		m.busy = true
		return m, m.refreshCmd()

	case refreshDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = m.reports.State().Err
		} else {
			m.errMsg = ""
		}
		m.clampOffset()
		return m, nil

	case createDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = m.reports.State().Err
			return m, nil
		}
		m.errMsg = ""
		m.notice = "Alert created"
		m.reportForm = nil
		m.mode = modeList
		m.cursor = 0
		m.clampOffset()
		return m, nil

	case deleteDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = m.reports.State().Err
		} else {
			m.errMsg = ""
			m.notice = "Alert deleted"
		}
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		m.notice = ""
		switch m.mode {
		case modeAuth:
			return m.updateAuth(msg)
		case modeList:
			return m.updateList(msg)
		case modeNew:
			return m.updateReportForm(msg)
		case modeProfile:
			return m.updateProfile(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.reports.State().Items

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.clampOffset()
		}

	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
			m.clampOffset()
		}

	case "g", "home":
		m.cursor = 0
		m.clampOffset()

	case "G", "end":
		m.cursor = max(0, len(items)-1)
		m.clampOffset()

	case "r":
		if !m.busy {
			m.busy = true
			return m, m.refreshCmd()
		}

	case "n":
		if !m.busy {
			f := newReportForm()
			m.reportForm = &f
			m.mode = modeNew
		}

	case "d", "delete":
		if !m.busy && m.cursor < len(items) {
			id := items[m.cursor].ID
			m.busy = true
			return m, m.deleteCmd(id)
		}

	case "p":
		m.mode = modeProfile

	case "m":
		if m.mapURL != "" {
			if err := openURL(m.mapURL); err != nil {
				m.notice = "Map: " + m.mapURL
			} else {
				m.notice = "Opening map in browser"
			}
		}
	}

	return m, nil
}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "l":
		m.session.Logout(context.Background())
		m.reports.Clear()
		m.mode = modeAuth
		m.authForm = newAuthForm()
		m.cursor = 0
		m.offset = 0
		m.notice = "Logged out"

	case "esc", "b":
		m.mode = modeList
	}
	return m, nil
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.reports.Refresh(context.Background())}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{err: m.reports.Delete(context.Background(), id)}
	}
}

// stateError prefers the store's user-facing message over the raw error.
func (m Model) stateError(err error) string {
	if st := m.session.State(); st.Err != "" {
		return st.Err
	}
	return err.Error()
}

func (m Model) userName() string {
	if st := m.session.State(); st.User != nil {
		return st.User.Name
	}
	return ""
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeAuth:
		return m.viewAuth()
	case modeNew:
		return m.viewReportForm()
	case modeProfile:
		return m.viewProfile()
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	st := m.reports.State()
	title := titleStyle.Render("Voz Ativa")
	info := dimStyle.Render(fmt.Sprintf("  %s  %d alerts", m.userName(), len(st.Items)))
	b.WriteString(title + info + "\n")
	b.WriteString(headerStyle.Render(pad("Category", 16)+" "+pad("Description", 40)+" "+pad("Where", 24)+" Date") + "\n")

	visible := m.visibleRows()
	end := m.offset + visible
	if end > len(st.Items) {
		end = len(st.Items)
	}

	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(st.Items[i], i == m.cursor) + "\n")
	}
	for i := end - m.offset; i < visible; i++ {
		b.WriteString("\n")
	}

	if len(st.Items) == 0 && !m.busy {
		b.WriteString(dimStyle.Render("  No alerts yet. Press 'n' to report a problem.") + "\n")
	}

	b.WriteString(m.statusBar())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  n: new  r: refresh  d: delete  p: profile  m: map  q: quit"))
	return b.String()
}

func (m Model) renderRow(r models.Report, selected bool) string {
	where := ""
	if r.Location != nil {
		where = r.Location.Address
		if where == "" {
			where = fmt.Sprintf("%.4f, %.4f", r.Location.Latitude, r.Location.Longitude)
		}
	}
	date := ""
	if !r.CreatedAt.IsZero() {
		date = r.CreatedAt.Format("01-02 15:04")
	}

	desc := r.Description
	if runes := []rune(desc); len(runes) > 40 {
		desc = string(runes[:38]) + ".."
	}

	if selected {
		row := pad(r.Category.Label(), 16) + " " + pad(desc, 40) + " " + pad(where, 24) + " " + date
		return selectedStyle.Render(row)
	}

	var tag string
	switch r.Category {
	case models.CategoryFallenTree:
		tag = treeTag.Render(pad(r.Category.Label(), 16))
	case models.CategoryAccident:
		tag = accidentTag.Render(pad(r.Category.Label(), 16))
	default:
		tag = lightTag.Render(pad(r.Category.Label(), 16))
	}
	return " " + tag + " " + pad(desc, 40) + " " + pad(where, 24) + " " + date
}

func (m Model) viewProfile() string {
	st := m.session.State()
	name, email := "", ""
	if st.User != nil {
		name, email = st.User.Name, st.User.Email
	}
	content := fmt.Sprintf(
		"%s\n\n%s\n%s\n\n%s",
		boxTitleStyle.Render("Profile"),
		"Name:  "+name,
		"Email: "+email,
		dimStyle.Render("l: logout  esc: back  q: quit"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(content))
}

func (m Model) statusBar() string {
	switch {
	case m.busy:
		return statusBarStyle.Render("Working...")
	case m.errMsg != "":
		return errorStyle.Render(" " + m.errMsg)
	case m.notice != "":
		return noticeStyle.Render(" " + m.notice)
	default:
		return statusBarStyle.Render("Ready")
	}
}

func (m Model) visibleRows() int {
	// title + header + status + help
	v := m.height - 4
	if v < 1 {
		v = 1
	}
	return v
}

func (m *Model) clampOffset() {
	items := len(m.reports.State().Items)
	if m.cursor >= items {
		m.cursor = max(0, items-1)
	}
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func pad(s string, w int) string {
	runes := []rune(s)
	if len(runes) > w {
		return string(runes[:w])
	}
	return s + strings.Repeat(" ", w-len(runes))
}
