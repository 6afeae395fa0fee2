package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RelationshipPending  = "pending"
	RelationshipActive   = "active"
	RelationshipRejected = "rejected"
)

// BusinessRelationship links two businesses. At most one non-rejected row may
// exist per unordered pair; rejected rows remain as history.
type BusinessRelationship struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	RequesterBusinessID uuid.UUID `json:"requester_business_id" db:"requester_business_id"`
	TargetBusinessID    uuid.UUID `json:"target_business_id" db:"target_business_id"`
	Status              string    `json:"status" db:"status"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`

	// Joined for list views
	RequesterName string `json:"requester_name,omitempty" db:"-"`
	TargetName    string `json:"target_name,omitempty" db:"-"`
}
