package user

import (
	"habit-tracker-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

// AssertNotSelfDemotion rejects an admin removing their own admin role
func AssertNotSelfDemotion(actorId, targetId uuid.UUID, newIsAdmin bool) error {
	if actorId == targetId && !newIsAdmin {
		return apperror.NewBadRequest("You cannot remove your own admin privileges").WithCode("SELF_DEMOTION")
	}
	return nil
}
