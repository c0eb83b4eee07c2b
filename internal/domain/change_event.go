package domain

// ChangeOperation describes one board mutation.
type ChangeOperation string

// ChangeOperation values emitted after each successful mutation.
const (
	ChangeOperationCreate ChangeOperation = "create"
	ChangeOperationToggle ChangeOperation = "toggle"
	ChangeOperationDelete ChangeOperation = "delete"
)

// ChangeEvent records which task a mutation touched and its resulting value.
// For deletes Task holds the removed value.
type ChangeEvent struct {
	Operation ChangeOperation
	Task      Task
}
