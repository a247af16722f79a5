package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditAction string

const (
	AuditRegistered     AuditAction = "registered"
	AuditEmailVerified  AuditAction = "email_verified"
	AuditLoginSuccess   AuditAction = "login_success"
	AuditLoginFailed    AuditAction = "login_failed"
	AuditLawyerApproved AuditAction = "lawyer_approved"
	AuditLawyerRejected AuditAction = "lawyer_rejected"
	AuditProfileUpdated AuditAction = "profile_updated"
)

type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	AccountID *uuid.UUID `gorm:"type:uuid;index"`

	IPAddress *string     `gorm:"type:varchar(45)"`
	Action    AuditAction `gorm:"type:audit_action;not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
