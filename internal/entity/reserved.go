package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type ReservedStatus string

const (
	ReservedStatusPending  ReservedStatus = "pending"
	ReservedStatusApproved ReservedStatus = "approved"
	ReservedStatusRejected ReservedStatus = "rejected"
)

func (s ReservedStatus) IsValid() bool {
	switch s {
	case ReservedStatusPending, ReservedStatusApproved, ReservedStatusRejected:
		return true
	}

	return false
}

// ReservedMember is a staff claim on a customer, pending admin review.
// A rejected claim keeps its reason text.
type ReservedMember struct {
	ID           uuid.UUID      `json:"id"`
	CustomerName string         `json:"customer_name"`
	CustomerID   string         `json:"customer_id"`
	StaffID      uuid.UUID      `json:"staff_id"`
	Status       ReservedStatus `json:"status"`
	Reason       string         `json:"reason,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	ProcessedAt  *time.Time     `json:"processed_at,omitempty"`
	ProcessedBy  *uuid.UUID     `json:"processed_by,omitempty"`
}

func (m ReservedMember) IsProcessed() bool {
	return m.Status != ReservedStatusPending
}
