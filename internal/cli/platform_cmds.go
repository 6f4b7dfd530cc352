package cli

import (
	"context"
	"fmt"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/auth"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/models/admin"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/models/shared"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/notify"
)

func (a *App) restaurantsCmd(ctx context.Context, args []string) error {
	if err := auth.RequirePlatformAdmin(a.session); err != nil {
		return err
	}

	sub, args := subcommand(args, "list")
	switch sub {
	case "list":
		rows, err := a.restaurants.List(ctx)
		if err != nil {
			return err
		}
		w := a.table()
		fmt.Fprintln(w, "ID\tNAME\tSLUG")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%s\t%s\n", r.ID, r.Name, r.Slug)
		}
		return w.Flush()

	case "create":
		fs := newFlags("restaurants create", a.errOut)
		name := fs.String("name", "", "restaurant name")
		slug := fs.String("slug", "", "public slug")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		if *name == "" || *slug == "" {
			return errUsage
		}
		r, err := a.restaurants.Create(ctx, *name, *slug)
		if err != nil {
			return err
		}
		a.notifier.Success("Създаден ресторант")
		if r != nil {
			fmt.Fprintf(a.out, "%d\t%s\t%s\n", r.ID, r.Name, r.Slug)
		}
		return nil

	case "delete":
		id, _, err := splitID(args)
		if err != nil {
			return err
		}
		if err := a.confirm(fmt.Sprintf("Delete restaurant %d?", id)); err != nil {
			return err
		}
		if err := a.restaurants.Delete(ctx, id); err != nil {
			return err
		}
		a.notifier.Success("Изтрит ресторант")
		return nil
	}
	return errUsage
}

func (a *App) restaurantUsersCmd(ctx context.Context, args []string) error {
	if err := auth.RequirePlatformAdmin(a.session); err != nil {
		return err
	}
	restaurantID, args, err := splitID(args)
	if err != nil {
		return err
	}

	sub, args := subcommand(args, "list")
	switch sub {
	case "list":
		users, err := a.restaurants.Users(ctx, restaurantID)
		if err != nil {
			return err
		}
		w := a.table()
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
		}
		return w.Flush()

	case "attach":
		fs := newFlags("restaurant-users attach", a.errOut)
		var req admin.AttachUserRequest
		fs.StringVar(&req.Email, "email", "", "user email")
		role := fs.String("role", string(shared.RoleStaff), "owner, manager or staff")
		fs.StringVar(&req.Password, "password", "", "password for a new user")
		fs.StringVar(&req.Name, "name", "", "name for a new user")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		if req.Email == "" {
			return errUsage
		}
		req.Role = shared.RestaurantRole(*role)
		if err := a.restaurants.AttachUser(ctx, restaurantID, req); err != nil {
			return err
		}
		a.notifier.Success("Потребителят е добавен/закачен.")
		return nil

	case "detach":
		userID, _, err := splitID(args)
		if err != nil {
			return err
		}
		if err := a.confirm(fmt.Sprintf("Detach user %d from restaurant %d?", userID, restaurantID)); err != nil {
			return err
		}
		return notify.Promise(a.notifier, notify.Texts{
			Loading: "Премахване...",
			Success: "Премахнат потребител.",
			Error:   "Грешка при премахване",
		}, func() error {
			return a.restaurants.DetachUser(ctx, restaurantID, userID)
		})
	}
	return errUsage
}
