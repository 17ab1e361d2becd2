package cli

import (
	"context"
	"flag"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberwd/backoffice/internal/clients/omset"
	"github.com/memberwd/backoffice/internal/entity"
)

func (a *app) runOmset(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice omset <list|add|delete|summary> [...]")
	}

	switch args[0] {
	case "list":
		return a.omsetList(ctx, args[1:])
	case "add":
		return a.omsetAdd(ctx, args[1:])
	case "delete":
		return a.omsetDelete(ctx, args[1:])
	case "summary":
		return a.omsetSummary(ctx, args[1:])
	default:
		return subUsageError("unknown omset command %q", args[0])
	}
}

func (a *app) omsetList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("omset list", flag.ContinueOnError)
	staff := fs.String("staff", "", "filter by staff id")
	typ := fs.String("type", "", "filter by type (NDP|RDP)")
	from := fs.String("from", "", "window start (YYYY-MM-DD)")
	to := fs.String("to", "", "window end (YYYY-MM-DD)")
	limit := fs.Int("limit", 50, "max rows")
	offset := fs.Int("offset", 0, "rows to skip")

	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := omset.Filter{
		Type:   entity.OmsetType(*typ),
		Limit:  *limit,
		Offset: *offset,
	}

	if *staff != "" {
		staffID, err := parseUUID(*staff, "staff id")
		if err != nil {
			return err
		}

		filter.StaffID = &staffID
	}

	var err error

	filter.From, err = parseDate(*from)
	if err != nil {
		return err
	}

	filter.To, err = parseDate(*to)
	if err != nil {
		return err
	}

	list, err := a.omset.List(ctx, filter)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(list))

	for _, e := range list {
		rows = append(rows, []string{
			shortID(e.ID),
			e.DepositedAt.UTC().Format("2006-01-02"),
			shortID(e.StaffID),
			e.CustomerName,
			string(e.Type),
			formatAmount(e.Amount),
		})
	}

	a.table([]string{"ID", "DATE", "STAFF", "CUSTOMER", "TYPE", "AMOUNT"}, rows)

	return nil
}

func (a *app) omsetAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("omset add", flag.ContinueOnError)
	name := fs.String("name", "", "customer name")
	customerID := fs.String("customer-id", "", "customer id")
	amount := fs.String("amount", "", "deposit amount in IDR")
	typ := fs.String("type", "", "NDP or RDP")
	date := fs.String("date", "", "deposit date (YYYY-MM-DD, default today)")
	database := fs.String("database", "", "source database id (optional)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" || *customerID == "" || *amount == "" || *typ == "" {
		return subUsageError("backoffice omset add --name <customer> --customer-id <id> --amount <idr> --type <NDP|RDP> [--date <d>] [--database <id>]")
	}

	value, err := decimal.NewFromString(*amount)
	if err != nil {
		return subUsageError("invalid amount %q", *amount)
	}

	depositedAt, err := parseDate(*date)
	if err != nil {
		return err
	}

	if depositedAt.IsZero() {
		depositedAt = time.Now().UTC()
	}

	input := omset.AddInput{
		CustomerName: *name,
		CustomerID:   *customerID,
		Amount:       value,
		Type:         entity.OmsetType(*typ),
		DepositedAt:  depositedAt,
	}

	if *database != "" {
		dbID, err := parseUUID(*database, "database id")
		if err != nil {
			return err
		}

		input.DatabaseID = &dbID
	}

	entry, err := a.omset.Add(ctx, input)
	if err != nil {
		return err
	}

	a.printf("recorded %s deposit of %s for %s (%s)\n", entry.Type, formatAmount(entry.Amount), entry.CustomerName, shortID(entry.ID))

	return nil
}

func (a *app) omsetDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice omset delete <id>")
	}

	id, err := parseUUID(args[0], "omset entry id")
	if err != nil {
		return err
	}

	if err := a.omset.Delete(ctx, id); err != nil {
		return err
	}

	a.printf("deleted omset entry %s\n", id)

	return nil
}

func (a *app) omsetSummary(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("omset summary", flag.ContinueOnError)
	from := fs.String("from", "", "window start (YYYY-MM-DD)")
	to := fs.String("to", "", "window end (YYYY-MM-DD)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fromTime, err := parseDate(*from)
	if err != nil {
		return err
	}

	toTime, err := parseDate(*to)
	if err != nil {
		return err
	}

	summary, err := a.omset.Summary(ctx, fromTime, toTime)
	if err != nil {
		return err
	}

	a.printf("total: %s\n", formatAmount(summary.Total))
	a.printf("NDP: %d (%s)\n", summary.NDPCount, formatAmount(summary.NDPTotal))
	a.printf("RDP: %d (%s)\n", summary.RDPCount, formatAmount(summary.RDPTotal))

	if len(summary.PerStaff) > 0 {
		rows := make([][]string, 0, len(summary.PerStaff))

		for _, s := range summary.PerStaff {
			rows = append(rows, []string{
				s.Name,
				formatAmount(s.Total),
				strconv.Itoa(s.NDPCount),
				strconv.Itoa(s.RDPCount),
			})
		}

		a.table([]string{"STAFF", "TOTAL", "NDP", "RDP"}, rows)
	}

	return nil
}
