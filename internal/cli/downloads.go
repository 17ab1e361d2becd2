package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/memberwd/backoffice/internal/clients/downloads"
	"github.com/memberwd/backoffice/internal/entity"
)

func (a *app) runDownloads(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice downloads <request|list|approve|reject|fetch> [...]")
	}

	switch args[0] {
	case "request":
		return a.downloadsRequest(ctx, args[1:])
	case "list":
		return a.downloadsList(ctx, args[1:])
	case "approve":
		return a.downloadsApprove(ctx, args[1:])
	case "reject":
		return a.downloadsReject(ctx, args[1:])
	case "fetch":
		return a.downloadsFetch(ctx, args[1:])
	default:
		return subUsageError("unknown downloads command %q", args[0])
	}
}

func (a *app) downloadsRequest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("downloads request", flag.ContinueOnError)
	database := fs.String("database", "", "database id to export")
	note := fs.String("note", "", "reason shown to the approver")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *database == "" {
		return subUsageError("backoffice downloads request --database <id> [--note <text>]")
	}

	dbID, err := parseUUID(*database, "database id")
	if err != nil {
		return err
	}

	req, err := a.downloads.Request(ctx, dbID, *note)
	if err != nil {
		return err
	}

	a.printf("download requested (%s), waiting for approval\n", shortID(req.ID))

	return nil
}

func (a *app) downloadsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("downloads list", flag.ContinueOnError)
	status := fs.String("status", "", "filter by status (pending|approved|rejected)")
	mine := fs.Bool("mine", false, "only my requests")

	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.downloads.List(ctx, downloads.Filter{
		Status: entity.DownloadStatus(*status),
		Mine:   *mine,
	})
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(list))

	for _, r := range list {
		rows = append(rows, []string{
			shortID(r.ID),
			shortID(r.DatabaseID),
			string(r.Status),
			r.Note,
			formatTime(r.CreatedAt),
			formatTimePtr(r.ExpiresAt),
		})
	}

	a.table([]string{"ID", "DATABASE", "STATUS", "NOTE", "REQUESTED", "EXPIRES"}, rows)

	return nil
}

func (a *app) downloadsApprove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice downloads approve <id>")
	}

	id, err := parseUUID(args[0], "download request id")
	if err != nil {
		return err
	}

	req, err := a.downloads.Approve(ctx, id)
	if err != nil {
		return err
	}

	a.printf("approved download %s (token expires %s)\n", shortID(req.ID), formatTimePtr(req.ExpiresAt))

	return nil
}

func (a *app) downloadsReject(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("downloads reject", flag.ContinueOnError)
	rawID := fs.String("id", "", "download request id")
	note := fs.String("note", "", "rejection note")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *rawID == "" {
		return subUsageError("backoffice downloads reject --id <id> [--note <text>]")
	}

	id, err := parseUUID(*rawID, "download request id")
	if err != nil {
		return err
	}

	req, err := a.downloads.Reject(ctx, id, *note)
	if err != nil {
		return err
	}

	a.printf("rejected download %s\n", shortID(req.ID))

	return nil
}

// downloadsFetch finds the approved request and streams the artifact
// to a local file.
func (a *app) downloadsFetch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("downloads fetch", flag.ContinueOnError)
	rawID := fs.String("id", "", "download request id")
	out := fs.String("out", "", "output file path")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *rawID == "" || *out == "" {
		return subUsageError("backoffice downloads fetch --id <id> --out <path>")
	}

	id, err := parseUUID(*rawID, "download request id")
	if err != nil {
		return err
	}

	list, err := a.downloads.List(ctx, downloads.Filter{})
	if err != nil {
		return err
	}

	var req *entity.DownloadRequest

	for i := range list {
		if list[i].ID == id {
			req = &list[i]
			break
		}
	}

	if req == nil {
		return fmt.Errorf("%w: download request %s", entity.ErrNotFound, id)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	defer f.Close()

	n, err := a.downloads.Fetch(ctx, *req, f)
	if err != nil {
		return err
	}

	a.printf("wrote %d bytes to %s\n", n, *out)

	return nil
}
