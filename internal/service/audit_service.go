package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type AuditEventResponse struct {
	ID         string  `json:"id"`
	CreatedAt  string  `json:"created_at"`
	UserID     *string `json:"user_id"`
	Username   string  `json:"username"`
	Action     string  `json:"action"`
	EntityType string  `json:"entity_type"`
	EntityID   *string `json:"entity_id"`
	EntityRepr string  `json:"entity_repr"`
	Message    string  `json:"message"`
	RemoteAddr string  `json:"remote_addr"`
}

type AuditFilter struct {
	Action string
	UserID *uuid.UUID
	Page   int
	Limit  int
}

// --- Interface ---

// AuditService exposes the audit trail. Events are append-only; Delete
// exists so the API can answer deletion attempts with a stable error
// instead of a generic 404.
type AuditService interface {
	Record(ctx context.Context, actor Actor, action, entityType, entityID, entityRepr, message string) error
	ListEvents(ctx context.Context, filter AuditFilter) ([]AuditEventResponse, int64, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// --- Implementation ---

func (s *auditService) Record(ctx context.Context, actor Actor, action, entityType, entityID, entityRepr, message string) error {
	event := auditEvent(actor, action, entityType, entityID, entityRepr, message)
	if err := s.auditRepo.Record(ctx, event); err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}
	return nil
}

func (s *auditService) ListEvents(ctx context.Context, filter AuditFilter) ([]AuditEventResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	var userID string
	if filter.UserID != nil {
		userID = filter.UserID.String()
	}
	events, total, err := s.auditRepo.List(ctx, repository.AuditListFilter{
		Action: filter.Action,
		UserID: userID,
		Page:   filter.Page,
		Limit:  filter.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit events: %w", err)
	}

	res := make([]AuditEventResponse, 0, len(events))
	for _, e := range events {
		res = append(res, toAuditEventResponse(e))
	}
	return res, total, nil
}

// DeleteEvent always refuses. The repository has no delete path and the
// model rejects deletes at the ORM layer as well.
func (s *auditService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return model.ErrAuditEventImmutable
}

func toAuditEventResponse(e model.AuditEvent) AuditEventResponse {
	var userID *string
	if e.UserID != nil {
		id := e.UserID.String()
		userID = &id
	}
	return AuditEventResponse{
		ID:         e.ID.String(),
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		UserID:     userID,
		Username:   e.Username,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		EntityRepr: e.EntityRepr,
		Message:    e.Message,
		RemoteAddr: e.RemoteAddr,
	}
}
