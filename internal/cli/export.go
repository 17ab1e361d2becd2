package cli

import (
	"context"
	"flag"

	"github.com/memberwd/backoffice/internal/clients/databases"
	"github.com/memberwd/backoffice/internal/clients/omset"
	"github.com/memberwd/backoffice/internal/export"
)

func (a *app) runExport(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice export <omset|records|staff> [...]")
	}

	switch args[0] {
	case "omset":
		return a.exportOmset(ctx, args[1:])
	case "records":
		return a.exportRecords(ctx, args[1:])
	case "staff":
		return a.exportStaff(ctx, args[1:])
	default:
		return subUsageError("unknown export command %q", args[0])
	}
}

func (a *app) exportOmset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export omset", flag.ContinueOnError)
	from := fs.String("from", "", "window start (YYYY-MM-DD)")
	to := fs.String("to", "", "window end (YYYY-MM-DD)")
	out := fs.String("out", "omset.xlsx", "output .xlsx path")
	limit := fs.Int("limit", 10000, "entries to fetch")

	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := omset.Filter{Limit: *limit}

	var err error

	filter.From, err = parseDate(*from)
	if err != nil {
		return err
	}

	filter.To, err = parseDate(*to)
	if err != nil {
		return err
	}

	entries, err := a.omset.List(ctx, filter)
	if err != nil {
		return err
	}

	if err := export.OmsetReport(entries, *out); err != nil {
		return err
	}

	a.printf("wrote %d entries to %s\n", len(entries), *out)

	return nil
}

func (a *app) exportRecords(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export records", flag.ContinueOnError)
	database := fs.String("database", "", "database id")
	out := fs.String("out", "records.xlsx", "output .xlsx path")
	limit := fs.Int("limit", 10000, "records to fetch")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *database == "" {
		return subUsageError("backoffice export records --database <id> [--out <path>]")
	}

	dbID, err := parseUUID(*database, "database id")
	if err != nil {
		return err
	}

	list, err := a.databases.Records(ctx, dbID, databases.RecordFilter{Limit: *limit})
	if err != nil {
		return err
	}

	if err := export.RecordsReport(list, *out); err != nil {
		return err
	}

	a.printf("wrote %d records to %s\n", len(list), *out)

	return nil
}

func (a *app) exportStaff(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export staff", flag.ContinueOnError)
	from := fs.String("from", "", "window start (YYYY-MM-DD)")
	to := fs.String("to", "", "window end (YYYY-MM-DD)")
	out := fs.String("out", "staff.xlsx", "output .xlsx path")

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

	rows, err := a.analytics.StaffPerformance(ctx, fromTime, toTime)
	if err != nil {
		return err
	}

	if err := export.StaffPerformanceReport(rows, *out); err != nil {
		return err
	}

	a.printf("wrote %d staff rows to %s\n", len(rows), *out)

	return nil
}
