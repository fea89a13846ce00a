package domain

import "time"

// StaffEventAction labels an entry in the staff audit trail.
type StaffEventAction string

const (
	ActionRegistered StaffEventAction = "registered"
	ActionUpdated    StaffEventAction = "updated"
	ActionDeleted    StaffEventAction = "deleted"
)

// StaffEvent records a lifecycle change on a staff record.
type StaffEvent struct {
	StaffID    string
	Email      string
	Action     StaffEventAction
	OccurredAt time.Time
}
