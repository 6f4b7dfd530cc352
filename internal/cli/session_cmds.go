package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/auth"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/models"
)

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlags("login", a.errOut)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *email == "" {
		return errUsage
	}
	if *password == "" {
		p, err := a.readLine("password: ")
		if err != nil {
			return err
		}
		*password = p
	}

	res, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		var authErr *auth.AuthenticationError
		if errors.As(err, &authErr) {
			// already reported by the gateway
			return authErr.Err
		}
		return err
	}

	a.notifier.Success(fmt.Sprintf("Добре дошли, %s", res.User.Name))
	if res.IsAdmin {
		fmt.Fprintln(a.out, "platform admin: yes")
	}
	return nil
}

func (a *App) logout(ctx context.Context, args []string) error {
	if a.session.Token() == "" {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	if err := a.confirm("Log out?"); err != nil {
		return err
	}
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.notifier.Success("Излязохте от профила си")
	return nil
}

func (a *App) whoami(ctx context.Context, args []string) error {
	if err := auth.RequireSession(a.session); err != nil {
		return err
	}

	w := a.table()
	if u := a.session.User(); u != nil {
		fmt.Fprintf(w, "user:\t%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
	} else {
		fmt.Fprintf(w, "user:\tunknown (profile could not be loaded)\n")
	}
	fmt.Fprintf(w, "platform admin:\t%s\n", yesNo(a.session.IsAdmin()))
	if slug, ok := a.resolver.Resolve(ctx); ok {
		fmt.Fprintf(w, "restaurant:\t%s\n", slug)
	} else {
		fmt.Fprintf(w, "restaurant:\tnone selected\n")
	}
	if exp, ok := a.session.ExpiresAt(); ok {
		state := "valid"
		if time.Now().After(exp) {
			state = "expired"
		}
		fmt.Fprintf(w, "token expires:\t%s (%s)\n", exp.Local().Format(time.RFC3339), state)
	}
	return w.Flush()
}

func (a *App) profile(ctx context.Context, args []string) error {
	if err := auth.RequireSession(a.session); err != nil {
		return err
	}

	fs := newFlags("profile", a.errOut)
	var update models.ProfileUpdate
	fs.StringVar(&update.Name, "name", "", "new display name")
	fs.StringVar(&update.Email, "email", "", "new email")
	fs.StringVar(&update.Password, "password", "", "new password")
	fs.StringVar(&update.PasswordConfirmation, "password-confirm", "", "new password again")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if update == (models.ProfileUpdate{}) {
		return errUsage
	}
	if update.Password != update.PasswordConfirmation {
		return errors.New("passwords do not match")
	}

	if err := a.session.UpdateProfile(ctx, update); err != nil {
		return err
	}
	a.notifier.Success("Профилът е обновен")
	if u := a.session.User(); u != nil {
		fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	}
	return nil
}

// use selects the restaurant later commands run against.
func (a *App) use(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	slug, err := a.resolver.Select(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "using restaurant %s\n", slug)
	return nil
}
