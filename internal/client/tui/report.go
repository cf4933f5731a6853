package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vozativa/vozativa/internal/client/device"
	"github.com/vozativa/vozativa/internal/client/models"
)

// report form field indices
const (
	reportFieldCategory = iota
	reportFieldDescription
	reportFieldPhoto
	reportFieldLocation
	reportFieldCount
)

type reportForm struct {
	category    int // index into models.Categories()
	description textinput.Model
	photo       textinput.Model
	location    int // 0 = skip, 1 = attach
	focus       int
}

func newReportForm() reportForm {
	di := textinput.New()
	di.Placeholder = "what happened, and where"
	di.CharLimit = 500

	pi := textinput.New()
	pi.Placeholder = "photo file path (optional)"
	pi.CharLimit = 300

	return reportForm{
		description: di,
		photo:       pi,
		focus:       reportFieldCategory,
	}
}

func (f *reportForm) nextField(delta int) {
	f.blurCurrent()
	f.focus = (f.focus + delta + reportFieldCount) % reportFieldCount
	f.focusCurrent()
}

func (f *reportForm) blurCurrent() {
	switch f.focus {
	case reportFieldDescription:
		f.description.Blur()
	case reportFieldPhoto:
		f.photo.Blur()
	}
}

func (f *reportForm) focusCurrent() {
	switch f.focus {
	case reportFieldDescription:
		f.description.Focus()
		f.description.CursorEnd()
	case reportFieldPhoto:
		f.photo.Focus()
		f.photo.CursorEnd()
	}
}

func (m Model) updateReportForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.reportForm
	key := msg.String()

	switch key {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.reportForm = nil
		m.mode = modeList
		return m, nil

	case "tab", "down":
		f.nextField(1)
		return m, nil

	case "shift+tab", "up":
		f.nextField(-1)
		return m, nil

	case "enter":
		if m.busy {
			return m, nil
		}
		cats := models.Categories()
		draft := models.ReportDraft{
			Category:    cats[f.category],
			Description: f.description.Value(),
			PhotoPath:   f.photo.Value(),
		}
		m.busy = true
		m.errMsg = ""
		return m, m.createCmd(draft, f.location == 1)
	}

	switch f.focus {
	case reportFieldCategory:
		n := len(models.Categories())
		switch key {
		case "left", "h":
			f.category = (f.category - 1 + n) % n
		case "right", "l":
			f.category = (f.category + 1) % n
		}
		return m, nil

	case reportFieldDescription:
		var cmd tea.Cmd
		f.description, cmd = f.description.Update(msg)
		return m, cmd

	case reportFieldPhoto:
		var cmd tea.Cmd
		f.photo, cmd = f.photo.Update(msg)
		return m, cmd

	case reportFieldLocation:
		switch key {
		case "left", "h":
			f.location = 0
		case "right", "l":
			f.location = 1
		}
		return m, nil
	}

	return m, nil
}

// createCmd resolves the location attachment, if requested, and submits the
// draft. A denied locator or a failed geocode never blocks the submission.
func (m Model) createCmd(draft models.ReportDraft, attachLocation bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if attachLocation && m.locator != nil {
			pos, outcome, err := m.locator.Current(ctx)
			if err == nil && outcome == device.Granted {
				loc := &models.Location{Latitude: pos.Latitude, Longitude: pos.Longitude}
				if m.geocoder != nil {
					if addr, err := m.geocoder.ReverseGeocode(ctx, pos); err == nil {
						loc.Address = addr
					} else {
						m.log.Debug(ctx, "reverse geocode failed", "err", err)
					}
				}
				draft.Location = loc
			}
		}

		return createDoneMsg{err: m.reports.Create(ctx, draft)}
	}
}

func (m Model) viewReportForm() string {
	f := m.reportForm

	labels := make([]string, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		labels = append(labels, c.Label())
	}

	catLabel := fieldLabel("What:", f.focus == reportFieldCategory)
	catValue := renderRadio(labels, f.category, f.focus == reportFieldCategory)

	descLabel := fieldLabel("Desc:", f.focus == reportFieldDescription)
	photoLabel := fieldLabel("Photo:", f.focus == reportFieldPhoto)

	locLabel := fieldLabel("Where:", f.focus == reportFieldLocation)
	locValue := renderRadio([]string{"Skip", "My location"}, f.location, f.focus == reportFieldLocation)

	status := ""
	switch {
	case m.busy:
		status = dimStyle.Render("Submitting...")
	case m.errMsg != "":
		status = errorStyle.Render(m.errMsg)
	}

	content := fmt.Sprintf(
		"%s\n\n%s  %s\n\n%s  %s\n\n%s  %s\n\n%s  %s\n\n%s\n%s",
		boxTitleStyle.Render("Report a problem"),
		catLabel, catValue,
		descLabel, f.description.View(),
		photoLabel, f.photo.View(),
		locLabel, locValue,
		status,
		dimStyle.Render("Enter: submit  Esc: cancel  Tab: next  ←→: toggle"),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(content))
}
