package request

import "venuebook/internal/domain/actionlock"

type LockStatusQuery struct {
	ResourceType string `form:"resource_type" binding:"required"`
	ResourceID   string `form:"resource_id" binding:"required"`
	Action       string `form:"action" binding:"required"`
}

func (q LockStatusQuery) ToKey() actionlock.Key {
	return actionlock.Key{
		ResourceType: actionlock.ResourceType(q.ResourceType),
		ResourceID:   q.ResourceID,
		Action:       q.Action,
	}
}
