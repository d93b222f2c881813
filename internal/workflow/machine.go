package workflow

import "slices"

// Action names a workflow step.
type Action string

const (
	ActionAssign    Action = "assign"
	ActionStart     Action = "start"
	ActionSaveDraft Action = "saveDraft"
	ActionSubmit    Action = "submit"
	ActionRequeue   Action = "requeue"
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
	ActionReinspect Action = "reinspect"
	ActionReopen    Action = "reopen"
	ActionEdit      Action = "edit"
	ActionComplete  Action = "complete"
	ActionVerify    Action = "verify"
	ActionReceive   Action = "receive"
)

// Rule permits Action from any of the From states.
// An empty To keeps the current state. System rules are applied by the
// server as a side effect of another action and are never offered to users.
type Rule[S ~string] struct {
	Action Action
	From   []S
	To     S
	System bool
}

// Machine is the transition table of one entity type.
type Machine[S ~string] struct {
	entity string
	rules  []Rule[S]
}

func NewMachine[S ~string](entity string, rules ...Rule[S]) *Machine[S] {
	return &Machine[S]{entity: entity, rules: rules}
}

func (m *Machine[S]) Entity() string { return m.entity }

// Next returns the state reached by applying action in from, or a *TransitionError.
func (m *Machine[S]) Next(from S, action Action) (S, error) {
	for _, r := range m.rules {
		if r.Action != action || !slices.Contains(r.From, from) {
			continue
		}
		if r.To == "" {
			return from, nil
		}
		return r.To, nil
	}
	return from, &TransitionError{Entity: m.entity, State: string(from), Action: action}
}

// Can reports whether action is legal in state.
func (m *Machine[S]) Can(state S, action Action) bool {
	_, err := m.Next(state, action)
	return err == nil
}

// Allowed lists the user-facing actions legal in state, in table order.
func (m *Machine[S]) Allowed(state S) []Action {
	out := []Action{}
	for _, r := range m.rules {
		if r.System || !slices.Contains(r.From, state) || slices.Contains(out, r.Action) {
			continue
		}
		out = append(out, r.Action)
	}
	return out
}

// Terminal reports whether no action at all, user-facing or system, leaves state.
func (m *Machine[S]) Terminal(state S) bool {
	for _, r := range m.rules {
		if slices.Contains(r.From, state) {
			return false
		}
	}
	return true
}

// Outcome is the result of a successful decision: the updated record copy
// and the domain events the transition emits.
type Outcome[T any] struct {
	Record T
	Events []Event
}

func outcome[T any](record T, events ...Event) Outcome[T] {
	return Outcome[T]{Record: record, Events: events}
}
