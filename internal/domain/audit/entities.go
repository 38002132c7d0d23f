package audit

import "time"

const (
	EventVisitApproved      = "VISIT_APPROVED"
	EventVisitRejected      = "VISIT_REJECTED"
	EventBlacklistAdded     = "BLACKLIST_ADDED"
	EventBlacklistRemoved   = "BLACKLIST_REMOVED"
	EventUserDeleted        = "USER_DELETED"
	EventUserRoleChanged    = "USER_ROLE_CHANGED"
	EventVisitorProvisioned = "VISITOR_PROVISIONED"
)

// Log rows are append only.
type Log struct {
	AuditID   uint64    `gorm:"column:audit_id;primaryKey;autoIncrement"`
	UserID    *uint64   `gorm:"column:user_id;index"`
	EventType string    `gorm:"column:event_type;size:50;not null;index"`
	EventTime time.Time `gorm:"column:event_time;autoCreateTime"`
	IPAddress string    `gorm:"column:ip_address;size:45"`
	Notes     string    `gorm:"column:notes;type:text"`
}

func (Log) TableName() string { return "auditlogs" }

type View struct {
	AuditID   uint64    `gorm:"column:audit_id"`
	UserID    *uint64   `gorm:"column:user_id"`
	Username  *string   `gorm:"column:username"`
	EventType string    `gorm:"column:event_type"`
	EventTime time.Time `gorm:"column:event_time"`
	IPAddress string    `gorm:"column:ip_address"`
	Notes     string    `gorm:"column:notes"`
}
