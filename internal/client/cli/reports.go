package cli

import (
	"context"
	"fmt"

	"github.com/vozativa/vozativa/internal/client/device"
	"github.com/vozativa/vozativa/internal/client/models"
)

// List refreshes and prints the current user's reports, newest first.
func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return nil
	}

	if err := a.reports.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	st := a.reports.State()
	if len(st.Items) == 0 {
		fmt.Fprintln(a.out, "No alerts yet. Use 'report' to create one.")
		return nil
	}

	for _, r := range st.Items {
		line := fmt.Sprintf("%s  [%s]  %s", r.ID, r.Category.Label(), r.Description)
		if r.Location != nil && r.Location.Address != "" {
			line += "  @ " + r.Location.Address
		}
		if !r.CreatedAt.IsZero() {
			line += "  (" + r.CreatedAt.Format("2006-01-02 15:04") + ")"
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Report walks the user through creating an alert: category, description,
// optional photo, optional location. Capability denials abort only the
// attachment, never the whole submission.
func (a *App) Report(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return nil
	}

	category, err := a.askCategory()
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Describe the problem", a.out)
	if err != nil {
		return err
	}

	draft := models.ReportDraft{Category: category, Description: description}

	attach, err := getYesNo(a.reader, "Attach a photo?", a.out)
	if err != nil {
		return err
	}
	if attach {
		a.attachPhoto(ctx, &draft)
	}

	attach, err = getYesNo(a.reader, "Attach your location?", a.out)
	if err != nil {
		return err
	}
	if attach {
		a.attachLocation(ctx, &draft)
	}

	if err := a.reports.Create(ctx, draft); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Alert created!")
	return nil
}

// Delete prompts for a report id and removes it.
func (a *App) Delete(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return nil
	}

	id, err := getSimpleText(a.reader, "Enter alert id to delete", a.out)
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}

	if err := a.reports.Delete(ctx, id); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Alert deleted")
	return nil
}

func (a *App) askCategory() (models.Category, error) {
	fmt.Fprintln(a.out, "Categories:")
	for i, c := range models.Categories() {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, c.Label())
	}

	choice, err := getSimpleText(a.reader, "Choose a category (Enter for 1)", a.out)
	if err != nil {
		return "", err
	}

	cats := models.Categories()
	switch choice {
	case "", "1":
		return cats[0], nil
	case "2":
		return cats[1], nil
	case "3":
		return cats[2], nil
	default:
		fmt.Fprintln(a.out, "Unknown choice, using", cats[0].Label())
		return cats[0], nil
	}
}

func (a *App) attachPhoto(ctx context.Context, draft *models.ReportDraft) {
	res, err := a.gallery.Pick(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not pick a photo:", err.Error())
		return
	}
	switch res.Outcome {
	case device.Granted:
		draft.PhotoPath = res.Path
	case device.Denied:
		fmt.Fprintln(a.out, "Permission to access the photo library was denied")
	case device.Cancelled:
		fmt.Fprintln(a.out, "Photo selection cancelled")
	}
}

// attachLocation resolves the position and best-effort address. A missing
// address is fine; the coordinates alone are enough.
func (a *App) attachLocation(ctx context.Context, draft *models.ReportDraft) {
	pos, outcome, err := a.locator.Current(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not read your location:", err.Error())
		return
	}
	switch outcome {
	case device.Denied:
		fmt.Fprintln(a.out, "Permission to access your location was denied")
		return
	case device.Cancelled:
		return
	}

	loc := &models.Location{Latitude: pos.Latitude, Longitude: pos.Longitude}
	if a.geocoder != nil {
		if addr, err := a.geocoder.ReverseGeocode(ctx, pos); err == nil {
			loc.Address = addr
		} else {
			a.log.Debug(ctx, "reverse geocode failed", "err", err)
		}
	}
	draft.Location = loc
}
