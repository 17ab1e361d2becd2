package report

import (
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/memberwd/backoffice/internal/entity"
)

type Tier string

const (
	TierNone     Tier = ""
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
)

type tierRule struct {
	tier     Tier
	minNDP   int
	minOmset decimal.Decimal
	bonus    decimal.Decimal
}

// Thresholds and payouts in IDR. The table mirrors the backend's tier
// config; the backend stays authoritative for actual payouts.
var tierRules = []tierRule{
	{tier: TierDiamond, minNDP: 75, minOmset: decimal.NewFromInt(250_000_000), bonus: decimal.NewFromInt(3_000_000)},
	{tier: TierPlatinum, minNDP: 50, minOmset: decimal.NewFromInt(150_000_000), bonus: decimal.NewFromInt(1_750_000)},
	{tier: TierGold, minNDP: 30, minOmset: decimal.NewFromInt(75_000_000), bonus: decimal.NewFromInt(900_000)},
	{tier: TierSilver, minNDP: 15, minOmset: decimal.NewFromInt(35_000_000), bonus: decimal.NewFromInt(350_000)},
	{tier: TierBronze, minNDP: 5, minOmset: decimal.NewFromInt(10_000_000), bonus: decimal.NewFromInt(100_000)},
}

// BonusFor returns the highest tier whose NDP count and total omset
// thresholds are both met, or TierNone and zero.
func BonusFor(ndpCount int, totalOmset decimal.Decimal) (Tier, decimal.Decimal) {
	for _, rule := range tierRules {
		if ndpCount >= rule.minNDP && totalOmset.GreaterThanOrEqual(rule.minOmset) {
			return rule.tier, rule.bonus
		}
	}

	return TierNone, decimal.Zero
}

type StaffBonus struct {
	StaffID    uuid.UUID
	NDPCount   int
	TotalOmset decimal.Decimal
	Tier       Tier
	Bonus      decimal.Decimal
}

// StaffBonuses computes the per-staff bonus standing from raw entries,
// ordered by total omset descending (ties by staff id for stability).
func StaffBonuses(entries []entity.OmsetRecord) []StaffBonus {
	summaries := OmsetByStaff(entries)

	bonuses := make([]StaffBonus, 0, len(summaries))

	for staffID, s := range summaries {
		tier, bonus := BonusFor(s.NDPCount, s.Total)

		bonuses = append(bonuses, StaffBonus{
			StaffID:    staffID,
			NDPCount:   s.NDPCount,
			TotalOmset: s.Total,
			Tier:       tier,
			Bonus:      bonus,
		})
	}

	sort.Slice(bonuses, func(i, j int) bool {
		if !bonuses[i].TotalOmset.Equal(bonuses[j].TotalOmset) {
			return bonuses[i].TotalOmset.GreaterThan(bonuses[j].TotalOmset)
		}

		return bonuses[i].StaffID.String() < bonuses[j].StaffID.String()
	})

	return bonuses
}
