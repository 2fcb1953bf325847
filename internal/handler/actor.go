package handler

import (
	"time"

	"github.com/prathibhasolutions/prathibha-tech/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actorFrom builds the audit actor from the authenticated request context.
func actorFrom(c *gin.Context) service.Actor {
	actor := service.Actor{RemoteAddr: c.ClientIP()}

	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			if id, err := uuid.Parse(s); err == nil {
				actor.UserID = &id
			}
		}
	}
	if v, ok := c.Get("username"); ok {
		if s, ok := v.(string); ok {
			actor.Username = s
		}
	}
	return actor
}

// parseDateQuery turns an optional YYYY-MM-DD query value into a time pointer.
func parseDateQuery(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
