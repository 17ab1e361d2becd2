package report

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/memberwd/backoffice/internal/entity"
)

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()

	id, err := uuid.NewV4()
	require.NoError(t, err)

	return id
}

func assignedRecord(staffID uuid.UUID, outcome entity.Outcome) entity.Record {
	return entity.Record{
		Status:     entity.RecordStatusAssigned,
		AssignedTo: &staffID,
		Outcome:    outcome,
	}
}

func TestStaffProgress(t *testing.T) {
	t.Parallel()

	staffID := uuid.Must(uuid.NewV4())

	records := []entity.Record{
		assignedRecord(staffID, entity.OutcomePending),
		assignedRecord(staffID, entity.OutcomeContacted),
		assignedRecord(staffID, entity.OutcomeDeposited),
		assignedRecord(staffID, entity.OutcomeNoAnswer),
		assignedRecord(staffID, entity.OutcomeWrongNumber),
		{Status: entity.RecordStatusAvailable, Outcome: entity.OutcomePending},
	}

	stats := StaffProgress(records)

	require.Equal(t, 5, stats.Assigned)
	require.Equal(t, 4, stats.Worked)
	require.InDelta(t, 0.8, stats.ProgressRate, 1e-9)
	require.InDelta(t, 0.5, stats.ContactRate, 1e-9)
	require.InDelta(t, 0.25, stats.DepositRate, 1e-9)
	require.InDelta(t, 0.25, stats.InvalidRate, 1e-9)
}

func TestStaffProgress_Empty(t *testing.T) {
	t.Parallel()

	stats := StaffProgress(nil)

	require.Zero(t, stats.Assigned)
	require.Zero(t, stats.ProgressRate)
	require.Zero(t, stats.ContactRate)
}

func TestStaffProgressByStaff(t *testing.T) {
	t.Parallel()

	alice := mustUUID(t)
	bob := mustUUID(t)

	records := []entity.Record{
		assignedRecord(alice, entity.OutcomeDeposited),
		assignedRecord(alice, entity.OutcomePending),
		assignedRecord(bob, entity.OutcomeNoAnswer),
		{Status: entity.RecordStatusAvailable},
	}

	stats := StaffProgressByStaff(records)
	require.Len(t, stats, 2)
	require.Equal(t, 2, stats[alice].Assigned)
	require.Equal(t, 1, stats[alice].Worked)
	require.Equal(t, 1, stats[bob].Worked)
}

func omsetEntry(staffID uuid.UUID, typ entity.OmsetType, amount int64, day string) entity.OmsetRecord {
	depositedAt, _ := time.Parse("2006-01-02", day)

	return entity.OmsetRecord{
		StaffID:     staffID,
		Type:        typ,
		Amount:      decimal.NewFromInt(amount),
		DepositedAt: depositedAt,
	}
}

func TestOmsetSummary(t *testing.T) {
	t.Parallel()

	staffID := uuid.Must(uuid.NewV4())

	entries := []entity.OmsetRecord{
		omsetEntry(staffID, entity.OmsetNDP, 1_000_000, "2026-08-01"),
		omsetEntry(staffID, entity.OmsetNDP, 2_000_000, "2026-08-01"),
		omsetEntry(staffID, entity.OmsetRDP, 500_000, "2026-08-02"),
	}

	s := OmsetSummary(entries)

	require.True(t, s.Total.Equal(decimal.NewFromInt(3_500_000)))
	require.Equal(t, 2, s.NDPCount)
	require.Equal(t, 1, s.RDPCount)
	require.True(t, s.NDPTotal.Equal(decimal.NewFromInt(3_000_000)))
	require.True(t, s.RDPTotal.Equal(decimal.NewFromInt(500_000)))
}

func TestOmsetByDay(t *testing.T) {
	t.Parallel()

	staffID := uuid.Must(uuid.NewV4())

	entries := []entity.OmsetRecord{
		omsetEntry(staffID, entity.OmsetNDP, 100, "2026-08-02"),
		omsetEntry(staffID, entity.OmsetRDP, 200, "2026-08-01"),
		omsetEntry(staffID, entity.OmsetNDP, 300, "2026-08-02"),
	}

	days := OmsetByDay(entries)
	require.Len(t, days, 2)
	require.Equal(t, "2026-08-01", days[0].Day)
	require.Equal(t, "2026-08-02", days[1].Day)
	require.Equal(t, 2, days[1].Count)
	require.True(t, days[1].Total.Equal(decimal.NewFromInt(400)))
}

func TestBonusFor(t *testing.T) {
	t.Parallel()

	idr := func(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

	tests := []struct {
		name      string
		ndp       int
		omset     decimal.Decimal
		wantTier  Tier
		wantBonus decimal.Decimal
	}{
		{name: "below bronze", ndp: 4, omset: idr(50_000_000), wantTier: TierNone, wantBonus: decimal.Zero},
		{name: "ndp met but omset gate not", ndp: 20, omset: idr(9_999_999), wantTier: TierNone, wantBonus: decimal.Zero},
		{name: "bronze exact", ndp: 5, omset: idr(10_000_000), wantTier: TierBronze, wantBonus: idr(100_000)},
		{name: "silver", ndp: 15, omset: idr(35_000_000), wantTier: TierSilver, wantBonus: idr(350_000)},
		{name: "gold", ndp: 33, omset: idr(80_000_000), wantTier: TierGold, wantBonus: idr(900_000)},
		{name: "platinum", ndp: 50, omset: idr(150_000_000), wantTier: TierPlatinum, wantBonus: idr(1_750_000)},
		{name: "diamond", ndp: 80, omset: idr(300_000_000), wantTier: TierDiamond, wantBonus: idr(3_000_000)},
		{name: "high ndp capped by omset", ndp: 80, omset: idr(40_000_000), wantTier: TierSilver, wantBonus: idr(350_000)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tier, bonus := BonusFor(tt.ndp, tt.omset)
			require.Equal(t, tt.wantTier, tier)
			require.True(t, bonus.Equal(tt.wantBonus), "bonus %s", bonus)
		})
	}
}

func TestStaffBonuses(t *testing.T) {
	t.Parallel()

	top := mustUUID(t)
	low := mustUUID(t)

	var entries []entity.OmsetRecord

	// top: 6 NDP entries of 2M each -> bronze
	for i := 0; i < 6; i++ {
		entries = append(entries, omsetEntry(top, entity.OmsetNDP, 2_000_000, "2026-08-01"))
	}

	entries = append(entries, omsetEntry(low, entity.OmsetRDP, 1_000_000, "2026-08-01"))

	bonuses := StaffBonuses(entries)
	require.Len(t, bonuses, 2)

	require.Equal(t, top, bonuses[0].StaffID)
	require.Equal(t, TierBronze, bonuses[0].Tier)
	require.True(t, bonuses[0].Bonus.Equal(decimal.NewFromInt(100_000)))

	require.Equal(t, low, bonuses[1].StaffID)
	require.Equal(t, TierNone, bonuses[1].Tier)
	require.True(t, bonuses[1].Bonus.IsZero())
}
