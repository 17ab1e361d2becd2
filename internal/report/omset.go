package report

import (
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/memberwd/backoffice/internal/entity"
)

// Summary is the client-side mirror of the backend's omset rollup,
// recomputed from raw entries on every call.
type Summary struct {
	Total    decimal.Decimal
	NDPCount int
	RDPCount int
	NDPTotal decimal.Decimal
	RDPTotal decimal.Decimal
}

func OmsetSummary(entries []entity.OmsetRecord) Summary {
	s := Summary{
		Total:    decimal.Zero,
		NDPTotal: decimal.Zero,
		RDPTotal: decimal.Zero,
	}

	for _, e := range entries {
		s.Total = s.Total.Add(e.Amount)

		switch e.Type {
		case entity.OmsetNDP:
			s.NDPCount++
			s.NDPTotal = s.NDPTotal.Add(e.Amount)
		case entity.OmsetRDP:
			s.RDPCount++
			s.RDPTotal = s.RDPTotal.Add(e.Amount)
		}
	}

	return s
}

type DayTotal struct {
	Day   string
	Count int
	Total decimal.Decimal
}

// OmsetByDay buckets entries by deposit date (UTC, YYYY-MM-DD),
// returned in ascending day order.
func OmsetByDay(entries []entity.OmsetRecord) []DayTotal {
	buckets := make(map[string]DayTotal)

	for _, e := range entries {
		day := e.DepositedAt.UTC().Format("2006-01-02")

		b, ok := buckets[day]
		if !ok {
			b = DayTotal{Day: day, Total: decimal.Zero}
		}

		b.Count++
		b.Total = b.Total.Add(e.Amount)
		buckets[day] = b
	}

	days := make([]DayTotal, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, b)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })

	return days
}

// OmsetByStaff groups entries per staff member.
func OmsetByStaff(entries []entity.OmsetRecord) map[uuid.UUID]Summary {
	grouped := make(map[uuid.UUID][]entity.OmsetRecord)

	for _, e := range entries {
		grouped[e.StaffID] = append(grouped[e.StaffID], e)
	}

	summaries := make(map[uuid.UUID]Summary, len(grouped))

	for staffID, es := range grouped {
		summaries[staffID] = OmsetSummary(es)
	}

	return summaries
}
