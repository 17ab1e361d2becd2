package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type OmsetType string

const (
	// OmsetNDP marks a customer's first deposit (new depositing player).
	OmsetNDP OmsetType = "NDP"
	// OmsetRDP marks a repeat deposit (redepositing player).
	OmsetRDP OmsetType = "RDP"
)

func (t OmsetType) IsValid() bool {
	switch t {
	case OmsetNDP, OmsetRDP:
		return true
	}

	return false
}

// OmsetRecord is one deposit entry credited to a staff member.
type OmsetRecord struct {
	ID           uuid.UUID       `json:"id"`
	StaffID      uuid.UUID       `json:"staff_id"`
	CustomerName string          `json:"customer_name"`
	CustomerID   string          `json:"customer_id"`
	Amount       decimal.Decimal `json:"amount"`
	Type         OmsetType       `json:"type"`
	DatabaseID   *uuid.UUID      `json:"database_id,omitempty"`
	DepositedAt  time.Time       `json:"deposited_at"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OmsetSummary is the backend's aggregation over a date window. The
// client-side mirror computed from raw entries lives in internal/report.
type OmsetSummary struct {
	Total    decimal.Decimal  `json:"total"`
	NDPCount int              `json:"ndp_count"`
	RDPCount int              `json:"rdp_count"`
	NDPTotal decimal.Decimal  `json:"ndp_total"`
	RDPTotal decimal.Decimal  `json:"rdp_total"`
	PerStaff []StaffOmsetRow  `json:"per_staff,omitempty"`
	PerDay   []DailyOmsetRow  `json:"per_day,omitempty"`
}

type StaffOmsetRow struct {
	StaffID  uuid.UUID       `json:"staff_id"`
	Name     string          `json:"name"`
	Total    decimal.Decimal `json:"total"`
	NDPCount int             `json:"ndp_count"`
	RDPCount int             `json:"rdp_count"`
}

type DailyOmsetRow struct {
	Day   string          `json:"day"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}
