package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Action enum constants for audit events
const (
	AuditActionLogin  = "LOGIN"
	AuditActionLogout = "LOGOUT"
	AuditActionAdd    = "ADD"
	AuditActionChange = "CHANGE"
	AuditActionDelete = "DELETE"
	AuditActionOther  = "OTHER"
)

// ErrAuditEventImmutable is returned by any attempt to update or delete an
// audit event once created.
var ErrAuditEventImmutable = errors.New("audit events are immutable")

// AuditEvent is an append-only record of who did what, when, and from where.
// UserID/Username are empty for system-originated or anonymous actions.
// EntityID is a string so events survive the removal of the referenced
// entity (or even its entity type); EntityRepr is the entity's string form
// captured at event time, before any deletion.
type AuditEvent struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Username   string     `gorm:"type:varchar(255)" json:"username"`
	Action     string     `gorm:"type:varchar(10);not null;index" json:"action"`
	EntityType string     `gorm:"type:varchar(100);index" json:"entity_type"`
	EntityID   *string    `gorm:"type:varchar(50)" json:"entity_id"`
	EntityRepr string     `gorm:"type:varchar(255)" json:"entity_repr"`
	Message    string     `gorm:"type:text" json:"message"`
	RemoteAddr string     `gorm:"type:varchar(64)" json:"remote_addr"`
}

func (e AuditEvent) String() string {
	return fmt.Sprintf("%s %s %s", e.Action, e.EntityType, e.EntityRepr)
}

// BeforeUpdate blocks updates at the storage layer.
func (e *AuditEvent) BeforeUpdate(tx *gorm.DB) error {
	return ErrAuditEventImmutable
}

// BeforeDelete blocks deletes at the storage layer.
func (e *AuditEvent) BeforeDelete(tx *gorm.DB) error {
	return ErrAuditEventImmutable
}
