package service

import (
	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"github.com/google/uuid"
)

// Actor identifies who triggered a mutation, for the audit trail. A zero
// Actor means the action was system-originated or anonymous; audit events
// then carry a null user.
type Actor struct {
	UserID     *uuid.UUID
	Username   string
	RemoteAddr string
}

// auditEvent builds an audit row for a mutation on entity, capturing its
// string representation at call time. Callers invoke this before deleting
// the entity so the representation survives removal.
func auditEvent(actor Actor, action, entityType, entityID, entityRepr, message string) *model.AuditEvent {
	var idRef *string
	if entityID != "" {
		idRef = &entityID
	}
	return &model.AuditEvent{
		UserID:     actor.UserID,
		Username:   actor.Username,
		Action:     action,
		EntityType: entityType,
		EntityID:   idRef,
		EntityRepr: entityRepr,
		Message:    message,
		RemoteAddr: actor.RemoteAddr,
	}
}
