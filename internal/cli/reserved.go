package cli

import (
	"context"
	"flag"

	"github.com/memberwd/backoffice/internal/clients/reserved"
	"github.com/memberwd/backoffice/internal/entity"
)

func (a *app) runReserved(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice reserved <list|claim|approve|reject|delete> [...]")
	}

	switch args[0] {
	case "list":
		return a.reservedList(ctx, args[1:])
	case "claim":
		return a.reservedClaim(ctx, args[1:])
	case "approve":
		return a.reservedApprove(ctx, args[1:])
	case "reject":
		return a.reservedReject(ctx, args[1:])
	case "delete":
		return a.reservedDelete(ctx, args[1:])
	default:
		return subUsageError("unknown reserved command %q", args[0])
	}
}

func (a *app) reservedList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reserved list", flag.ContinueOnError)
	staff := fs.String("staff", "", "filter by claiming staff id")
	status := fs.String("status", "", "filter by status (pending|approved|rejected)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := reserved.Filter{Status: entity.ReservedStatus(*status)}

	if *staff != "" {
		staffID, err := parseUUID(*staff, "staff id")
		if err != nil {
			return err
		}

		filter.StaffID = &staffID
	}

	list, err := a.reserved.List(ctx, filter)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(list))

	for _, m := range list {
		rows = append(rows, []string{
			shortID(m.ID),
			m.CustomerName,
			m.CustomerID,
			shortID(m.StaffID),
			string(m.Status),
			m.Reason,
			formatTime(m.CreatedAt),
		})
	}

	a.table([]string{"ID", "CUSTOMER", "CUSTOMER ID", "STAFF", "STATUS", "REASON", "CLAIMED"}, rows)

	return nil
}

func (a *app) reservedClaim(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reserved claim", flag.ContinueOnError)
	name := fs.String("name", "", "customer name to reserve")
	customerID := fs.String("customer-id", "", "customer id")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" || *customerID == "" {
		return subUsageError("backoffice reserved claim --name <customer> --customer-id <id>")
	}

	m, err := a.reserved.Claim(ctx, reserved.ClaimInput{
		CustomerName: *name,
		CustomerID:   *customerID,
	})
	if err != nil {
		return err
	}

	a.printf("claimed %s (%s), waiting for approval\n", m.CustomerName, shortID(m.ID))

	return nil
}

func (a *app) reservedApprove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice reserved approve <id>")
	}

	id, err := parseUUID(args[0], "reserved member id")
	if err != nil {
		return err
	}

	m, err := a.reserved.Approve(ctx, id)
	if err != nil {
		return err
	}

	a.printf("approved claim on %s\n", m.CustomerName)

	return nil
}

func (a *app) reservedReject(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reserved reject", flag.ContinueOnError)
	rawID := fs.String("id", "", "reserved member id")
	reason := fs.String("reason", "", "rejection reason shown to the staff member")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *rawID == "" {
		return subUsageError("backoffice reserved reject --id <id> [--reason <text>]")
	}

	id, err := parseUUID(*rawID, "reserved member id")
	if err != nil {
		return err
	}

	m, err := a.reserved.Reject(ctx, id, *reason)
	if err != nil {
		return err
	}

	a.printf("rejected claim on %s\n", m.CustomerName)

	return nil
}

func (a *app) reservedDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice reserved delete <id>")
	}

	id, err := parseUUID(args[0], "reserved member id")
	if err != nil {
		return err
	}

	if err := a.reserved.Delete(ctx, id); err != nil {
		return err
	}

	a.printf("withdrew claim %s\n", id)

	return nil
}
