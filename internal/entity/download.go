package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type DownloadStatus string

const (
	DownloadStatusPending  DownloadStatus = "pending"
	DownloadStatusApproved DownloadStatus = "approved"
	DownloadStatusRejected DownloadStatus = "rejected"
)

func (s DownloadStatus) IsValid() bool {
	switch s {
	case DownloadStatusPending, DownloadStatusApproved, DownloadStatusRejected:
		return true
	}

	return false
}

// DownloadRequest gates database exports behind admin approval. The
// FileToken is only present once approved and authorizes the artifact
// URL until ExpiresAt.
type DownloadRequest struct {
	ID          uuid.UUID      `json:"id"`
	DatabaseID  uuid.UUID      `json:"database_id"`
	RequestedBy uuid.UUID      `json:"requested_by"`
	Status      DownloadStatus `json:"status"`
	Note        string         `json:"note,omitempty"`
	FileToken   string         `json:"file_token,omitempty"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
	ProcessedBy *uuid.UUID     `json:"processed_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ProcessedAt *time.Time     `json:"processed_at,omitempty"`
}

func (r DownloadRequest) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}
