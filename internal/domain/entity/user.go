// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the local account behind a VK identity. One VK id maps to exactly
// one local user, permanently; there is no account merging.
type User struct {
	ID        uuid.UUID // The local primary identity referenced by all owned resources.
	VKID      string    // The VK numeric user id as a string. Unique de-duplication key.
	VKProfile []byte    // The raw profile JSON last returned by VK. Opaque; never parsed beyond the id.
	CreatedAt time.Time
	UpdatedAt time.Time
}
