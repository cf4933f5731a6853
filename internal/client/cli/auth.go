package cli

import (
	"context"
	"fmt"
)

// Login prompts for credentials and establishes a session. On success the
// report collection is re-scoped to the new session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	a.reports.Clear()
	fmt.Fprintf(a.out, "Welcome, %s!\n", a.statusLine())
	return nil
}

// Register prompts for the registration form and creates an account. A
// successful registration logs the user in immediately.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, name, email, password); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	a.reports.Clear()
	fmt.Fprintln(a.out, "Account created!")
	return nil
}

// WhoAmI prints the current user profile.
func (a *App) WhoAmI(_ context.Context) error {
	st := a.session.State()
	if st.User == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", st.User.Name, st.User.Email)
	return nil
}

// Logout clears the session and the per-session report collection.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.reports.Clear()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
