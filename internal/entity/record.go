package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type RecordStatus string

const (
	RecordStatusAvailable RecordStatus = "available"
	RecordStatusAssigned  RecordStatus = "assigned"
)

func (s RecordStatus) IsValid() bool {
	switch s {
	case RecordStatusAvailable, RecordStatusAssigned:
		return true
	}

	return false
}

type Outcome string

const (
	OutcomePending     Outcome = "pending"
	OutcomeContacted   Outcome = "contacted"
	OutcomeNoAnswer    Outcome = "no_answer"
	OutcomeWrongNumber Outcome = "wrong_number"
	OutcomeDeposited   Outcome = "deposited"
)

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomePending, OutcomeContacted, OutcomeNoAnswer, OutcomeWrongNumber, OutcomeDeposited:
		return true
	}

	return false
}

// Record is one customer row inside a database. RowData carries the
// original spreadsheet columns untouched.
type Record struct {
	ID         uuid.UUID         `json:"id"`
	DatabaseID uuid.UUID         `json:"database_id"`
	RowData    map[string]string `json:"row_data"`
	Status     RecordStatus      `json:"status"`
	AssignedTo *uuid.UUID        `json:"assigned_to,omitempty"`
	AssignedAt *time.Time        `json:"assigned_at,omitempty"`
	Outcome    Outcome           `json:"outcome"`
	WorkedAt   *time.Time        `json:"worked_at,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// IsWorked reports whether staff recorded any outcome for the record.
func (r Record) IsWorked() bool {
	return r.Outcome != "" && r.Outcome != OutcomePending
}

// Field returns a row_data column by key, empty when absent.
func (r Record) Field(key string) string {
	return r.RowData[key]
}
