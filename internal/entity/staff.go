package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type Role string

const (
	RoleStaff       Role = "staff"
	RoleAdmin       Role = "admin"
	RoleMasterAdmin Role = "master_admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStaff, RoleAdmin, RoleMasterAdmin:
		return true
	}

	return false
}

// Level orders roles for comparisons: staff < admin < master_admin.
func (r Role) Level() int {
	switch r {
	case RoleStaff:
		return 1
	case RoleAdmin:
		return 2
	case RoleMasterAdmin:
		return 3
	}

	return 0
}

func (r Role) AtLeast(other Role) bool {
	return r.Level() >= other.Level()
}

// Page slugs the back office knows about. Blocked pages are stored and
// matched by these slugs.
const (
	PageDatabases     = "databases"
	PageRecords       = "records"
	PageReserved      = "reserved-members"
	PageOmset         = "omset"
	PageAnalytics     = "analytics"
	PageNotifications = "notifications"
	PageUsers         = "users"
	PageDownloads     = "downloads"
	PageReports       = "reports"
)

func KnownPages() []string {
	return []string{
		PageDatabases,
		PageRecords,
		PageReserved,
		PageOmset,
		PageAnalytics,
		PageNotifications,
		PageUsers,
		PageDownloads,
		PageReports,
	}
}

func IsKnownPage(page string) bool {
	for _, p := range KnownPages() {
		if p == page {
			return true
		}
	}

	return false
}

func GetPagesByRole(role Role) []string {
	rolePages := map[Role][]string{
		RoleStaff: {
			PageRecords,
			PageReserved,
			PageOmset,
			PageNotifications,
			PageReports,
		},
		RoleAdmin: {
			PageDatabases,
			PageRecords,
			PageReserved,
			PageOmset,
			PageAnalytics,
			PageNotifications,
			PageDownloads,
			PageReports,
		},
		RoleMasterAdmin: KnownPages(),
	}

	pages, exists := rolePages[role]
	if !exists {
		return []string{PageNotifications}
	}

	return pages
}

type Staff struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	BlockedPages []string  `json:"blocked_pages"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// CanAccessPage reports whether the page is in the role's default set and
// not individually blocked. Master admins are never blocked.
func (s Staff) CanAccessPage(page string) bool {
	if s.Role == RoleMasterAdmin {
		return true
	}

	allowed := false

	for _, p := range GetPagesByRole(s.Role) {
		if p == page {
			allowed = true
			break
		}
	}

	if !allowed {
		return false
	}

	for _, p := range s.BlockedPages {
		if p == page {
			return false
		}
	}

	return true
}

// RequirePage is the guard form of CanAccessPage.
func (s Staff) RequirePage(page string) error {
	if !s.CanAccessPage(page) {
		return ErrPageBlocked
	}

	return nil
}
