package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project groups tasks under an owner and a set of member users.
type Project struct {
	ID          uuid.UUID
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	OwnerID     uuid.UUID
	MemberIDs   []uuid.UUID
	IsActive    bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
