package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type NotificationType string

const (
	NotificationDatabaseUploaded        NotificationType = "database_uploaded"
	NotificationRecordsAssigned         NotificationType = "records_assigned"
	NotificationReservedMemberRequested NotificationType = "reserved_member_requested"
	NotificationReservedMemberApproved  NotificationType = "reserved_member_approved"
	NotificationReservedMemberRejected  NotificationType = "reserved_member_rejected"
	NotificationDownloadRequested       NotificationType = "download_requested"
	NotificationDownloadApproved        NotificationType = "download_approved"
	NotificationDownloadRejected        NotificationType = "download_rejected"
	NotificationOmsetAdded              NotificationType = "omset_added"
	NotificationAnnouncement            NotificationType = "announcement"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationDatabaseUploaded,
		NotificationRecordsAssigned,
		NotificationReservedMemberRequested,
		NotificationReservedMemberApproved,
		NotificationReservedMemberRejected,
		NotificationDownloadRequested,
		NotificationDownloadApproved,
		NotificationDownloadRejected,
		NotificationOmsetAdded,
		NotificationAnnouncement:
		return true
	}

	return false
}

// Notification is one inbox entry. Data carries type-specific payload
// fields the backend attaches (database id, staff name and so on).
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	Data      map[string]any   `json:"data,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
