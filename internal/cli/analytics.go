package cli

import (
	"context"
	"flag"
	"strconv"
	"time"

	"github.com/memberwd/backoffice/internal/entity"
)

func (a *app) runAnalytics(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice analytics <overview|staff|deposits> [...]")
	}

	fs := flag.NewFlagSet("analytics "+args[0], flag.ContinueOnError)
	from := fs.String("from", "", "window start (YYYY-MM-DD)")
	to := fs.String("to", "", "window end (YYYY-MM-DD)")
	granularity := fs.String("granularity", "day", "deposit series granularity (day|week|month)")

	if err := fs.Parse(args[1:]); err != nil {
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

	switch args[0] {
	case "overview":
		return a.analyticsOverview(ctx, fromTime, toTime)
	case "staff":
		return a.analyticsStaff(ctx, fromTime, toTime)
	case "deposits":
		return a.analyticsDeposits(ctx, fromTime, toTime, entity.Granularity(*granularity))
	default:
		return subUsageError("unknown analytics command %q", args[0])
	}
}

func (a *app) analyticsOverview(ctx context.Context, from, to time.Time) error {
	overview, err := a.analytics.Overview(ctx, from, to)
	if err != nil {
		return err
	}

	a.printf("databases: %d\n", overview.Databases)
	a.printf("records: %d total, %d assigned, %d available\n",
		overview.TotalRecords, overview.AssignedRecords, overview.AvailableRecords)
	a.printf("staff: %d\n", overview.StaffCount)
	a.printf("omset: %s (NDP %d, RDP %d)\n",
		formatAmount(overview.OmsetTotal), overview.NDPCount, overview.RDPCount)

	return nil
}

func (a *app) analyticsStaff(ctx context.Context, from, to time.Time) error {
	list, err := a.analytics.StaffPerformance(ctx, from, to)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(list))

	for _, r := range list {
		rows = append(rows, []string{
			r.Name,
			strconv.Itoa(r.AssignedCount),
			strconv.Itoa(r.WorkedCount),
			strconv.Itoa(r.DepositCount),
			formatAmount(r.OmsetTotal),
		})
	}

	a.table([]string{"STAFF", "ASSIGNED", "WORKED", "DEPOSITS", "OMSET"}, rows)

	return nil
}

func (a *app) analyticsDeposits(ctx context.Context, from, to time.Time, granularity entity.Granularity) error {
	series, err := a.analytics.DepositSeries(ctx, from, to, granularity)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(series))

	for _, b := range series {
		rows = append(rows, []string{
			b.Bucket,
			strconv.Itoa(b.NDPCount),
			strconv.Itoa(b.RDPCount),
			formatAmount(b.Total),
		})
	}

	a.table([]string{"BUCKET", "NDP", "RDP", "TOTAL"}, rows)

	return nil
}
