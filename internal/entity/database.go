package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Database is one uploaded customer-record file.
type Database struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	FileName         string    `json:"file_name"`
	TotalRecords     int       `json:"total_records"`
	AvailableRecords int       `json:"available_records"`
	AssignedRecords  int       `json:"assigned_records"`
	UploadedBy       uuid.UUID `json:"uploaded_by"`
	CreatedAt        time.Time `json:"created_at"`
}

func (d Database) Exhausted() bool {
	return d.AvailableRecords == 0
}
