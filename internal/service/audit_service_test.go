package service

import (
	"context"
	"testing"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteEventAlwaysRefuses(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	svc := &auditService{auditRepo: auditRepo}

	require.NoError(t, auditRepo.Record(context.Background(), &model.AuditEvent{
		Action:     model.AuditActionAdd,
		EntityType: "Stock",
	}))

	err := svc.DeleteEvent(context.Background(), uuid.New())
	require.ErrorIs(t, err, model.ErrAuditEventImmutable)
	assert.Len(t, auditRepo.events, 1)
}

func TestListEventsFiltersByActionAndUser(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	svc := &auditService{auditRepo: auditRepo}
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()
	seed := []*model.AuditEvent{
		{Action: model.AuditActionAdd, EntityType: "Stock", UserID: &userID, Username: "admin"},
		{Action: model.AuditActionDelete, EntityType: "Stock", UserID: &userID, Username: "admin"},
		{Action: model.AuditActionAdd, EntityType: "Invoice", UserID: &otherID, Username: "staff"},
	}
	for _, e := range seed {
		require.NoError(t, auditRepo.Record(ctx, e))
	}

	events, total, err := svc.ListEvents(ctx, AuditFilter{Action: model.AuditActionAdd, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, events, 2)

	events, total, err = svc.ListEvents(ctx, AuditFilter{UserID: &userID, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, e := range events {
		assert.Equal(t, "admin", e.Username)
	}
}
