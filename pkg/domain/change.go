package domain

// Action identifies the kind of mutation captured in a Change record.
type Action string

// Actions recorded by transactions for rule evaluation.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Change captures one mutation applied within a transaction. Before is unset
// for creates; After is unset for deletes. The payloads hold the typed entity
// values as they were cloned at mutation time.
type Change struct {
	Entity EntityType `json:"entity"`
	Action Action     `json:"action"`
	Before any        `json:"before,omitempty"`
	After  any        `json:"after,omitempty"`
}
