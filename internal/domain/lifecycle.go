package domain

// AllowedTransitions is the task state machine: directed edges only, no
// implicit reverse. A missing edge means the transition is illegal for
// every role. Archived is terminal.
var AllowedTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusTodo:       {TaskStatusScheduled, TaskStatusInProgress, TaskStatusArchived},
	TaskStatusScheduled:  {TaskStatusTodo, TaskStatusInProgress, TaskStatusBlocked, TaskStatusArchived},
	TaskStatusInProgress: {TaskStatusTodo, TaskStatusBlocked, TaskStatusCompleted, TaskStatusArchived},
	TaskStatusBlocked:    {TaskStatusTodo, TaskStatusInProgress, TaskStatusArchived},
	TaskStatusCompleted:  {TaskStatusArchived},
	TaskStatusArchived:   {},
}

// CanTransition reports whether the table contains the (from, to) edge.
func CanTransition(from, to TaskStatus) bool {
	for _, next := range AllowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
