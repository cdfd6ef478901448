package provision

// State is a pipeline stage
type State string

const (
	StateStart                 State = "start"
	StateCheckingPresence      State = "checking_presence"
	StateUsingCached           State = "using_cached"
	StateBuilding              State = "building"
	StateConfiguringTemplate   State = "configuring_template"
	StateReconcilingExtensions State = "reconciling_extensions"
	StateDone                  State = "done"
	StateFailed                State = "failed"
)

// IsTerminal reports whether no further transition can follow
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// Transition is one move between states
type Transition struct {
	From State `json:"from" yaml:"from"`
	To   State `json:"to" yaml:"to"`
}

// Result is the outcome of one pipeline run
type Result struct {
	State       State
	Transitions []Transition
	Err         error
}

// Succeeded reports whether the pipeline reached Done
func (r Result) Succeeded() bool {
	return r.State == StateDone
}

// Visited returns every state entered after Start, in order
func (r Result) Visited() []State {
	states := make([]State, 0, len(r.Transitions))
	for _, t := range r.Transitions {
		states = append(states, t.To)
	}
	return states
}
