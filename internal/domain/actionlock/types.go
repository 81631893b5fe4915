package actionlock

import "fmt"

// ResourceType scopes a lock key. "global" exists for actions that must be
// exclusive across the whole installation rather than one record.
type ResourceType string

const (
	ResourceBooking   ResourceType = "booking"
	ResourceEvent     ResourceType = "event"
	ResourceImage     ResourceType = "image"
	ResourceEmail     ResourceType = "email"
	ResourceDashboard ResourceType = "dashboard"
	ResourceGlobal    ResourceType = "global"
)

func (rt ResourceType) String() string {
	return string(rt)
}

func (rt ResourceType) IsValid() bool {
	switch rt {
	case ResourceBooking, ResourceEvent, ResourceImage, ResourceEmail, ResourceDashboard, ResourceGlobal:
		return true
	default:
		return false
	}
}

// Key is the exclusivity tuple. Two admins may hold different actions on the
// same resource concurrently; only the identical tuple contends.
type Key struct {
	ResourceType ResourceType
	ResourceID   string
	Action       string
}

func (k Key) Validate() error {
	if !k.ResourceType.IsValid() {
		return ErrInvalidResourceType
	}
	if k.ResourceID == "" {
		return ErrEmptyResourceID
	}
	if k.Action == "" {
		return ErrEmptyAction
	}
	return nil
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s", k.ResourceType, k.ResourceID, k.Action)
}

// Holder identifies the admin owning a lease. Identity comparison is by
// email; the name is carried only for display to other admins.
type Holder struct {
	Email string
	Name  string
}
