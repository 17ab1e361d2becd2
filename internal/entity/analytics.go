package entity

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Overview is the dashboard headline block for a date window.
type Overview struct {
	Databases        int             `json:"databases"`
	TotalRecords     int             `json:"total_records"`
	AssignedRecords  int             `json:"assigned_records"`
	AvailableRecords int             `json:"available_records"`
	StaffCount       int             `json:"staff_count"`
	OmsetTotal       decimal.Decimal `json:"omset_total"`
	NDPCount         int             `json:"ndp_count"`
	RDPCount         int             `json:"rdp_count"`
}

type StaffPerformanceRow struct {
	StaffID       uuid.UUID       `json:"staff_id"`
	Name          string          `json:"name"`
	AssignedCount int             `json:"assigned_count"`
	WorkedCount   int             `json:"worked_count"`
	DepositCount  int             `json:"deposit_count"`
	OmsetTotal    decimal.Decimal `json:"omset_total"`
}

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}

	return false
}

// DepositBucket is one point of the deposit time series.
type DepositBucket struct {
	Bucket   string          `json:"bucket"`
	NDPCount int             `json:"ndp_count"`
	RDPCount int             `json:"rdp_count"`
	Total    decimal.Decimal `json:"total"`
}
