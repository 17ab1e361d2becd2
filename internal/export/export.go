package export

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/memberwd/backoffice/internal/entity"
	"github.com/memberwd/backoffice/internal/report"
)

// OmsetReport writes fetched deposit entries to an .xlsx file with a
// summary block under the rows.
func OmsetReport(entries []entity.OmsetRecord, path string) error {
	const sheetName = "OMSET"

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []any{"Date", "Staff ID", "Customer", "Customer ID", "Type", "Amount"}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for i, e := range entries {
		amount, _ := e.Amount.Float64()

		row := []any{
			e.DepositedAt.UTC().Format("2006-01-02"),
			e.StaffID.String(),
			e.CustomerName,
			e.CustomerID,
			string(e.Type),
			amount,
		}

		if err := f.SetSheetRow(sheetName, cell("A", i+2), &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	summary := report.OmsetSummary(entries)
	total, _ := summary.Total.Float64()
	ndpTotal, _ := summary.NDPTotal.Float64()
	rdpTotal, _ := summary.RDPTotal.Float64()

	base := len(entries) + 3

	summaryRows := [][]any{
		{"Total", total},
		{"NDP", summary.NDPCount, ndpTotal},
		{"RDP", summary.RDPCount, rdpTotal},
	}

	for i, row := range summaryRows {
		r := row
		if err := f.SetSheetRow(sheetName, cell("A", base+i), &r); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	return nil
}

// StaffPerformanceReport writes the analytics staff table to .xlsx.
func StaffPerformanceReport(rows []entity.StaffPerformanceRow, path string) error {
	const sheetName = "Staff Performance"

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []any{"Staff", "Assigned", "Worked", "Deposits", "Omset"}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for i, r := range rows {
		omset, _ := r.OmsetTotal.Float64()

		row := []any{r.Name, r.AssignedCount, r.WorkedCount, r.DepositCount, omset}

		if err := f.SetSheetRow(sheetName, cell("A", i+2), &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	return nil
}

// RecordsReport writes records to .xlsx. The column set is the union of
// all row_data keys in sorted order, then status/outcome.
func RecordsReport(records []entity.Record, path string) error {
	const sheetName = "Records"

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	keys := rowDataKeys(records)

	headers := make([]any, 0, len(keys)+2)
	for _, k := range keys {
		headers = append(headers, k)
	}

	headers = append(headers, "status", "outcome")

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for i, r := range records {
		row := make([]any, 0, len(keys)+2)
		for _, k := range keys {
			row = append(row, r.RowData[k])
		}

		row = append(row, string(r.Status), string(r.Outcome))

		if err := f.SetSheetRow(sheetName, cell("A", i+2), &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	return nil
}

func rowDataKeys(records []entity.Record) []string {
	seen := make(map[string]struct{})

	for _, r := range records {
		for k := range r.RowData {
			seen[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func cell(col string, row int) string {
	return col + strconv.Itoa(row)
}
