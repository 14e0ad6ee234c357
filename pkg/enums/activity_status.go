package enums

// ActivityStatus tracks the lifecycle of a scheduled volunteer activity.
// Scheduled is the only non-terminal state.
type ActivityStatus string

const (
	ActivityStatusScheduled ActivityStatus = "scheduled"
	ActivityStatusCompleted ActivityStatus = "completed"
	ActivityStatusCancelled ActivityStatus = "cancelled"
)

// String implements fmt.Stringer.
func (a ActivityStatus) String() string {
	return string(a)
}

// IsTerminal reports whether no further transitions are allowed.
func (a ActivityStatus) IsTerminal() bool {
	return a == ActivityStatusCompleted || a == ActivityStatusCancelled
}
