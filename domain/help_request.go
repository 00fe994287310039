package domain

import "time"

// Department routes a help request to the sector office handling it.
type Department string

const (
	DepartmentEducation      Department = "education"
	DepartmentHealth         Department = "health"
	DepartmentLand           Department = "land"
	DepartmentSecurity       Department = "security"
	DepartmentAdministration Department = "administration"
)

// HelpRequestStatus is the request's position in the routing state machine:
// pending -> assigned -> in_progress -> resolved | rejected.
type HelpRequestStatus string

const (
	HelpRequestPending    HelpRequestStatus = "pending"
	HelpRequestAssigned   HelpRequestStatus = "assigned"
	HelpRequestInProgress HelpRequestStatus = "in_progress"
	HelpRequestResolved   HelpRequestStatus = "resolved"
	HelpRequestRejected   HelpRequestStatus = "rejected"
)

// HelpRequest is a citizen request routed to a department.
type HelpRequest struct {
	ID         string            `bson:"_id,omitempty" json:"id"`
	UserID     string            `bson:"user_id" json:"userId"`
	Department Department        `bson:"department" json:"department"`
	Subject    string            `bson:"subject" json:"subject"`
	Message    string            `bson:"message" json:"message"`
	Status     HelpRequestStatus `bson:"status" json:"status"`
	AssigneeID string            `bson:"assignee_id,omitempty" json:"assigneeId,omitempty"`
	Note       string            `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt  time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time         `bson:"updated_at" json:"updatedAt"`
}

// ValidDepartment reports whether d names a known department.
func ValidDepartment(d Department) bool {
	switch d {
	case DepartmentEducation, DepartmentHealth, DepartmentLand,
		DepartmentSecurity, DepartmentAdministration:
		return true
	}
	return false
}

// CanTransition reports whether a help request may move from one status to
// the next. Terminal states accept no further transitions.
func CanTransition(from, to HelpRequestStatus) bool {
	switch from {
	case HelpRequestPending:
		return to == HelpRequestAssigned || to == HelpRequestRejected
	case HelpRequestAssigned:
		return to == HelpRequestInProgress || to == HelpRequestRejected
	case HelpRequestInProgress:
		return to == HelpRequestResolved || to == HelpRequestRejected
	}
	return false
}
