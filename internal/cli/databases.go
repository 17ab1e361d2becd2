package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/memberwd/backoffice/internal/clients/databases"
	"github.com/memberwd/backoffice/internal/entity"
	"github.com/memberwd/backoffice/internal/sheet"
)

func (a *app) runDatabases(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice databases <list|upload|delete|records|assign> [...]")
	}

	switch args[0] {
	case "list":
		return a.databasesList(ctx)
	case "upload":
		return a.databasesUpload(ctx, args[1:])
	case "delete":
		return a.databasesDelete(ctx, args[1:])
	case "records":
		return a.databasesRecords(ctx, args[1:])
	case "assign":
		return a.databasesAssign(ctx, args[1:])
	default:
		return subUsageError("unknown databases command %q", args[0])
	}
}

func (a *app) databasesList(ctx context.Context) error {
	list, err := a.databases.List(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(list))

	for _, d := range list {
		available := strconv.Itoa(d.AvailableRecords)
		if d.Exhausted() {
			available = "exhausted"
		}

		rows = append(rows, []string{
			shortID(d.ID),
			d.Name,
			d.FileName,
			strconv.Itoa(d.TotalRecords),
			available,
			strconv.Itoa(d.AssignedRecords),
			formatTime(d.CreatedAt),
		})
	}

	a.table([]string{"ID", "NAME", "FILE", "TOTAL", "AVAILABLE", "ASSIGNED", "UPLOADED"}, rows)

	return nil
}

func (a *app) databasesUpload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("databases upload", flag.ContinueOnError)
	name := fs.String("name", "", "database display name")
	file := fs.String("file", "", "path to .xls/.xlsx/.csv file")
	inspect := fs.Bool("inspect", false, "parse locally and preview, do not upload")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *file == "" {
		return subUsageError("backoffice databases upload --file <path> [--name <name>] [--inspect]")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	fileName := filepath.Base(*file)

	if *inspect {
		return a.databasesInspect(data, fileName)
	}

	displayName := *name
	if displayName == "" {
		displayName = fileName
	}

	db, err := a.databases.Upload(ctx, databases.UploadInput{
		Name:     displayName,
		FileName: fileName,
		Data:     data,
	})
	if err != nil {
		return err
	}

	a.printf("uploaded %s: %d records (%s)\n", db.Name, db.TotalRecords, db.ID)

	return nil
}

const inspectPreviewRows = 5

func (a *app) databasesInspect(data []byte, fileName string) error {
	rows, err := sheet.ReadRows(bytes.NewReader(data), fileName)
	if err != nil {
		return err
	}

	parsed, err := sheet.ParseRecords(rows)
	if err != nil {
		return err
	}

	a.printf("%s: %d columns, %d data rows\n", fileName, len(parsed.Headers), len(parsed.Rows))

	preview := parsed.Rows
	if len(preview) > inspectPreviewRows {
		preview = preview[:inspectPreviewRows]
	}

	tableRows := make([][]string, 0, len(preview))

	for _, r := range preview {
		row := make([]string, 0, len(parsed.Headers))
		for _, h := range parsed.Headers {
			row = append(row, r[h])
		}

		tableRows = append(tableRows, row)
	}

	a.table(parsed.Headers, tableRows)

	return nil
}

func (a *app) databasesDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return subUsageError("backoffice databases delete <id>")
	}

	id, err := parseUUID(args[0], "database id")
	if err != nil {
		return err
	}

	if err := a.databases.Delete(ctx, id); err != nil {
		return err
	}

	a.printf("deleted database %s\n", id)

	return nil
}

func (a *app) databasesRecords(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("databases records", flag.ContinueOnError)
	id := fs.String("id", "", "database id")
	status := fs.String("status", "", "filter by status (available|assigned)")
	limit := fs.Int("limit", 50, "max rows")
	offset := fs.Int("offset", 0, "rows to skip")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		return subUsageError("backoffice databases records --id <id> [--status <s>] [--limit N] [--offset N]")
	}

	dbID, err := parseUUID(*id, "database id")
	if err != nil {
		return err
	}

	list, err := a.databases.Records(ctx, dbID, databases.RecordFilter{
		Status: entity.RecordStatus(*status),
		Limit:  *limit,
		Offset: *offset,
	})
	if err != nil {
		return err
	}

	a.printRecords(list)

	return nil
}

func (a *app) databasesAssign(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("databases assign", flag.ContinueOnError)
	id := fs.String("id", "", "database id")
	staff := fs.String("staff", "", "staff id to assign records to")
	count := fs.Int("count", 0, "number of records to assign")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" || *staff == "" || *count <= 0 {
		return subUsageError("backoffice databases assign --id <id> --staff <id> --count N")
	}

	dbID, err := parseUUID(*id, "database id")
	if err != nil {
		return err
	}

	staffID, err := parseUUID(*staff, "staff id")
	if err != nil {
		return err
	}

	result, err := a.databases.Assign(ctx, databases.AssignInput{
		DatabaseID: dbID,
		StaffID:    staffID,
		Count:      *count,
	})
	if err != nil {
		return err
	}

	a.printf("assigned %d of %d requested, %d remaining\n", result.Assigned, result.Requested, result.Remaining)

	return nil
}
