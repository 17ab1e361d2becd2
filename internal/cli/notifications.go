package cli

import (
	"context"
	"flag"

	"github.com/memberwd/backoffice/internal/clients/notifications"
)

func (a *app) runNotifications(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice notifications <list|read|read-all> [...]")
	}

	switch args[0] {
	case "list":
		return a.notificationsList(ctx, args[1:])
	case "read":
		return a.notificationsRead(ctx, args[1:])
	case "read-all":
		return a.notificationsReadAll(ctx)
	default:
		return subUsageError("unknown notifications command %q", args[0])
	}
}

func (a *app) notificationsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notifications list", flag.ContinueOnError)
	unread := fs.Bool("unread", false, "unread only")
	limit := fs.Int("limit", 20, "max rows")

	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.notifications.List(ctx, notifications.Filter{
		UnreadOnly: *unread,
		Limit:      *limit,
	})
	if err != nil {
		return err
	}

	count, err := a.notifications.UnreadCount(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(list))

	for _, n := range list {
		read := " "
		if !n.Read {
			read = "*"
		}

		rows = append(rows, []string{
			read,
			shortID(n.ID),
			string(n.Type),
			n.Title,
			formatTime(n.CreatedAt),
		})
	}

	a.table([]string{"", "ID", "TYPE", "TITLE", "AT"}, rows)
	a.printf("%d unread\n", count)

	return nil
}

func (a *app) notificationsRead(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice notifications read <id>")
	}

	id, err := parseUUID(args[0], "notification id")
	if err != nil {
		return err
	}

	if err := a.notifications.MarkRead(ctx, id); err != nil {
		return err
	}

	a.printf("marked %s read\n", id)

	return nil
}

func (a *app) notificationsReadAll(ctx context.Context) error {
	if err := a.notifications.MarkAllRead(ctx); err != nil {
		return err
	}

	a.printf("marked all notifications read\n")

	return nil
}
