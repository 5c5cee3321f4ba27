package domain

import "time"

// AuditAction names a security-relevant account event.
type AuditAction string

const (
	ActionRegister       AuditAction = "register"
	ActionLogin          AuditAction = "login"
	ActionLogout         AuditAction = "logout"
	ActionPasswordChange AuditAction = "password_change"
	ActionProfileUpdate  AuditAction = "profile_update"
)

// AuditEntry records a single account event for the audit trail.
type AuditEntry struct {
	UserID    string
	Action    AuditAction
	At        time.Time
	RequestID string
}
