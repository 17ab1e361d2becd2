package report

import (
	"github.com/gofrs/uuid/v5"

	"github.com/memberwd/backoffice/internal/entity"
)

// ProgressStats summarizes how far a worklist has been worked through.
// All rates are fractions in [0,1]; a zero denominator yields a zero
// rate rather than NaN.
type ProgressStats struct {
	Assigned    int
	Worked      int
	Contacted   int
	Deposited   int
	NoAnswer    int
	WrongNumber int

	ProgressRate float64
	ContactRate  float64
	DepositRate  float64
	InvalidRate  float64
}

// StaffProgress recomputes quality metrics from a flat record slice.
// Only assigned records count toward the denominator.
func StaffProgress(records []entity.Record) ProgressStats {
	var stats ProgressStats

	for _, r := range records {
		if r.Status != entity.RecordStatusAssigned {
			continue
		}

		stats.Assigned++

		if !r.IsWorked() {
			continue
		}

		stats.Worked++

		switch r.Outcome {
		case entity.OutcomeContacted:
			stats.Contacted++
		case entity.OutcomeDeposited:
			stats.Deposited++
		case entity.OutcomeNoAnswer:
			stats.NoAnswer++
		case entity.OutcomeWrongNumber:
			stats.WrongNumber++
		}
	}

	stats.ProgressRate = ratio(stats.Worked, stats.Assigned)
	stats.ContactRate = ratio(stats.Contacted+stats.Deposited, stats.Worked)
	stats.DepositRate = ratio(stats.Deposited, stats.Worked)
	stats.InvalidRate = ratio(stats.WrongNumber, stats.Worked)

	return stats
}

// StaffProgressByStaff groups records by assignee before computing
// per-staff stats. Unassigned records are skipped.
func StaffProgressByStaff(records []entity.Record) map[uuid.UUID]ProgressStats {
	grouped := make(map[uuid.UUID][]entity.Record)

	for _, r := range records {
		if r.AssignedTo == nil {
			continue
		}

		grouped[*r.AssignedTo] = append(grouped[*r.AssignedTo], r)
	}

	stats := make(map[uuid.UUID]ProgressStats, len(grouped))

	for staffID, rs := range grouped {
		stats[staffID] = StaffProgress(rs)
	}

	return stats
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}

	return float64(num) / float64(den)
}
