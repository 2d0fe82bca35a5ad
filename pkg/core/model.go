package core

// Priority represents the priority level of a test case.
type Priority string

// All possible priority levels.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid checks whether the priority is one of the defined levels.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Status represents the execution status of a test case. The enumeration is
// flat, any value may transition to any other value via update.
type Status string

// All possible test case statuses.
const (
	StatusPending Status = "PENDING"
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
)

// Valid checks whether the status is one of the defined levels.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPass || s == StatusFail
}

// Role represents the role of an authenticated user.
type Role string

// All possible user roles.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// DBStores contains collection of autoqa dbstores
type DBStores struct {
	ProjectStore      ProjectStore
	TestCaseStore     TestCaseStore
	TestStepStore     TestStepStore
	AuthoringStore    AuthoringStore
	NotificationStore NotificationStore
}
