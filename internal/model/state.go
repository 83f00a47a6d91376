package model

// State represents the lifecycle state of a download or conversion
type State string

const (
	// StateIdle means no operation is in progress
	StateIdle State = "Idle"

	// StateRunning means the operation is in progress
	StateRunning State = "Running"

	// StateCompleted means the operation finished successfully
	StateCompleted State = "Completed"

	// StateFailed means the operation failed with an error
	StateFailed State = "Failed"

	// StateCancelled means the operation was cancelled by the user
	StateCancelled State = "Cancelled"
)

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// IsActive returns true if an operation is currently in progress
func (s State) IsActive() bool {
	return s == StateRunning
}

// IsTerminal returns true if the state is a final outcome (completed,
// failed, or cancelled). Terminal states reset to Idle on the next start.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}
