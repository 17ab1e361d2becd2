package cli

import (
	"context"
	"flag"
	"sort"
	"strings"

	"github.com/memberwd/backoffice/internal/clients/records"
	"github.com/memberwd/backoffice/internal/entity"
)

func (a *app) runRecords(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice records <list|outcome|set> [...]")
	}

	switch args[0] {
	case "list":
		return a.recordsList(ctx, args[1:])
	case "outcome":
		return a.recordsOutcome(ctx, args[1:])
	case "set":
		return a.recordsSet(ctx, args[1:])
	default:
		return subUsageError("unknown records command %q", args[0])
	}
}

func (a *app) recordsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("records list", flag.ContinueOnError)
	staff := fs.String("staff", "", "filter by assignee staff id")
	status := fs.String("status", "", "filter by status (available|assigned)")
	outcome := fs.String("outcome", "", "filter by outcome")
	limit := fs.Int("limit", 50, "max rows")
	offset := fs.Int("offset", 0, "rows to skip")

	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := records.Filter{
		Status:  entity.RecordStatus(*status),
		Outcome: entity.Outcome(*outcome),
		Limit:   *limit,
		Offset:  *offset,
	}

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

	a.printRecords(list)

	return nil
}

func (a *app) recordsOutcome(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return subUsageError("backoffice records outcome <id> <pending|contacted|no_answer|wrong_number|deposited>")
	}

	id, err := parseUUID(args[0], "record id")
	if err != nil {
		return err
	}

	record, err := a.records.SetOutcome(ctx, id, entity.Outcome(args[1]))
	if err != nil {
		return err
	}

	a.printf("record %s outcome set to %s\n", shortID(record.ID), record.Outcome)

	return nil
}

// recordsSet merges key=value pairs into a record's row_data.
func (a *app) recordsSet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return subUsageError("backoffice records set <id> <key=value> [key=value...]")
	}

	id, err := parseUUID(args[0], "record id")
	if err != nil {
		return err
	}

	rowData := make(map[string]string, len(args)-1)

	for _, pair := range args[1:] {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return subUsageError("expected key=value, got %q", pair)
		}

		rowData[key] = value
	}

	record, err := a.records.UpdateRowData(ctx, id, rowData)
	if err != nil {
		return err
	}

	a.printf("record %s updated (%d fields)\n", shortID(record.ID), len(rowData))

	return nil
}

const maxRowDataPreview = 3

func (a *app) printRecords(list []entity.Record) {
	rows := make([][]string, 0, len(list))

	for _, r := range list {
		assignee := "-"
		if r.AssignedTo != nil {
			assignee = shortID(*r.AssignedTo)
		}

		rows = append(rows, []string{
			shortID(r.ID),
			string(r.Status),
			string(r.Outcome),
			assignee,
			formatTimePtr(r.WorkedAt),
			rowDataPreview(r.RowData),
		})
	}

	a.table([]string{"ID", "STATUS", "OUTCOME", "ASSIGNEE", "WORKED", "DATA"}, rows)
}

func rowDataPreview(rowData map[string]string) string {
	keys := make([]string, 0, len(rowData))
	for k := range rowData {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	if len(keys) > maxRowDataPreview {
		keys = keys[:maxRowDataPreview]
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+rowData[k])
	}

	return strings.Join(parts, " ")
}
