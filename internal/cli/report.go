package cli

import (
	"context"
	"flag"
	"strconv"

	"github.com/memberwd/backoffice/internal/clients/omset"
	"github.com/memberwd/backoffice/internal/clients/records"
	"github.com/memberwd/backoffice/internal/report"
)

func (a *app) runReport(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice report <progress|bonus> [...]")
	}

	switch args[0] {
	case "progress":
		return a.reportProgress(ctx, args[1:])
	case "bonus":
		return a.reportBonus(ctx, args[1:])
	default:
		return subUsageError("unknown report command %q", args[0])
	}
}

// reportProgress fetches the record worklist and derives quality
// metrics locally.
func (a *app) reportProgress(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report progress", flag.ContinueOnError)
	staff := fs.String("staff", "", "limit to one staff member")
	limit := fs.Int("limit", 1000, "records to fetch")

	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := records.Filter{Limit: *limit}

	if *staff != "" {
		staffID, err := parseUUID(*staff, "staff id")
		if err != nil {
			return err
		}

		filter.StaffID = &staffID
	}

	list, err := a.records.List(ctx, filter)
	if err != nil {
		return err
	}

	byStaff := report.StaffProgressByStaff(list)

	rows := make([][]string, 0, len(byStaff))

	for staffID, stats := range byStaff {
		rows = append(rows, []string{
			shortID(staffID),
			strconv.Itoa(stats.Assigned),
			strconv.Itoa(stats.Worked),
			formatPercent(stats.ProgressRate),
			formatPercent(stats.ContactRate),
			formatPercent(stats.DepositRate),
			formatPercent(stats.InvalidRate),
		})
	}

	a.table([]string{"STAFF", "ASSIGNED", "WORKED", "PROGRESS", "CONTACT", "DEPOSIT", "INVALID"}, rows)

	total := report.StaffProgress(list)
	a.printf("overall: %d assigned, %d worked (%s)\n", total.Assigned, total.Worked, formatPercent(total.ProgressRate))

	return nil
}

// reportBonus fetches deposit entries for the window and computes the
// tier standing per staff member.
func (a *app) reportBonus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report bonus", flag.ContinueOnError)
	from := fs.String("from", "", "window start (YYYY-MM-DD)")
	to := fs.String("to", "", "window end (YYYY-MM-DD)")
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

	bonuses := report.StaffBonuses(entries)

	rows := make([][]string, 0, len(bonuses))

	for _, b := range bonuses {
		tier := string(b.Tier)
		if tier == "" {
			tier = "-"
		}

		rows = append(rows, []string{
			shortID(b.StaffID),
			strconv.Itoa(b.NDPCount),
			formatAmount(b.TotalOmset),
			tier,
			formatAmount(b.Bonus),
		})
	}

	a.table([]string{"STAFF", "NDP", "OMSET", "TIER", "BONUS"}, rows)

	return nil
}
