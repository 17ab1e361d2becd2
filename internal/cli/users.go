package cli

import (
	"context"
	"flag"
	"strings"

	"github.com/memberwd/backoffice/internal/clients/users"
	"github.com/memberwd/backoffice/internal/entity"
)

func (a *app) runUsers(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice users <list|create|update|delete|block-pages> [...]")
	}

	switch args[0] {
	case "list":
		return a.usersList(ctx)
	case "create":
		return a.usersCreate(ctx, args[1:])
	case "update":
		return a.usersUpdate(ctx, args[1:])
	case "delete":
		return a.usersDelete(ctx, args[1:])
	case "block-pages":
		return a.usersBlockPages(ctx, args[1:])
	default:
		return subUsageError("unknown users command %q", args[0])
	}
}

func (a *app) usersList(ctx context.Context) error {
	list, err := a.users.List(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(list))

	for _, u := range list {
		active := "yes"
		if !u.Active {
			active = "no"
		}

		rows = append(rows, []string{
			shortID(u.ID),
			u.Username,
			u.Name,
			string(u.Role),
			active,
			strings.Join(u.BlockedPages, ","),
		})
	}

	a.table([]string{"ID", "USERNAME", "NAME", "ROLE", "ACTIVE", "BLOCKED PAGES"}, rows)

	return nil
}

func (a *app) usersCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users create", flag.ContinueOnError)
	username := fs.String("username", "", "login username")
	name := fs.String("name", "", "display name")
	password := fs.String("password", "", "initial password")
	role := fs.String("role", string(entity.RoleStaff), "role (staff|admin|master_admin)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *name == "" || *password == "" {
		return subUsageError("backoffice users create --username <u> --name <n> --password <p> [--role <r>]")
	}

	u, err := a.users.Create(ctx, users.CreateInput{
		Username: *username,
		Name:     *name,
		Password: *password,
		Role:     entity.Role(*role),
	})
	if err != nil {
		return err
	}

	a.printf("created %s %s (%s)\n", u.Role, u.Username, u.ID)

	return nil
}

func (a *app) usersUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users update", flag.ContinueOnError)
	rawID := fs.String("id", "", "user id")
	name := fs.String("name", "", "new display name")
	role := fs.String("role", "", "new role")
	active := fs.String("active", "", "true or false")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *rawID == "" {
		return subUsageError("backoffice users update --id <id> [--name <n>] [--role <r>] [--active <bool>]")
	}

	id, err := parseUUID(*rawID, "user id")
	if err != nil {
		return err
	}

	var input users.UpdateInput

	if *name != "" {
		input.Name = name
	}

	if *role != "" {
		r := entity.Role(*role)
		input.Role = &r
	}

	switch *active {
	case "":
	case "true":
		v := true
		input.Active = &v
	case "false":
		v := false
		input.Active = &v
	default:
		return subUsageError("--active must be true or false")
	}

	u, err := a.users.Update(ctx, id, input)
	if err != nil {
		return err
	}

	a.printf("updated %s\n", u.Username)

	return nil
}

func (a *app) usersDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice users delete <id>")
	}

	id, err := parseUUID(args[0], "user id")
	if err != nil {
		return err
	}

	if err := a.users.Delete(ctx, id); err != nil {
		return err
	}

	a.printf("deleted user %s\n", id)

	return nil
}

// usersBlockPages replaces the blocked page list; pass --pages "" to
// unblock everything.
func (a *app) usersBlockPages(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users block-pages", flag.ContinueOnError)
	rawID := fs.String("id", "", "user id")
	pages := fs.String("pages", "", "comma-separated page slugs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *rawID == "" {
		return subUsageError("backoffice users block-pages --id <id> --pages <a,b,c>")
	}

	id, err := parseUUID(*rawID, "user id")
	if err != nil {
		return err
	}

	var list []string

	if *pages != "" {
		for _, p := range strings.Split(*pages, ",") {
			list = append(list, strings.TrimSpace(p))
		}
	}

	u, err := a.users.SetBlockedPages(ctx, id, list)
	if err != nil {
		return err
	}

	a.printf("blocked pages for %s: %s\n", u.Username, strings.Join(u.BlockedPages, ","))

	return nil
}
