package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/memberwd/backoffice/internal/entity"
)

// table prints a header row and data rows aligned with tabwriter.
func (a *app) table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	_ = w.Flush()
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.UTC().Format("2006-01-02 15:04")
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}

	return formatTime(*t)
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(0)
}

func formatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// parseUUID accepts the full form only; short display ids are not
// accepted as input.
func parseUUID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s %q", entity.ErrInvalidInput, name, raw)
	}

	return id, nil
}

// parseDate accepts YYYY-MM-DD or RFC3339; empty input returns a zero
// time, which clients treat as "unbounded".
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD or RFC3339", entity.ErrInvalidInput, raw)
	}

	return t.UTC(), nil
}
