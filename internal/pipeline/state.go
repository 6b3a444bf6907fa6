package pipeline

// State is a position in the per-file state machine.
type State string

const (
	StateDiscovered  State = "discovered"
	StateProbed      State = "probed"
	StateClassified  State = "classified"
	StateExtracting  State = "extracting"
	StateNoSubtitles State = "no_subtitles"
	StateRemuxing    State = "remuxing"
	StateArchiving   State = "archiving"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

func (s State) String() string { return string(s) }

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

var transitions = map[State][]State{
	StateDiscovered:  {StateProbed},
	StateProbed:      {StateClassified},
	StateClassified:  {StateExtracting, StateNoSubtitles},
	StateExtracting:  {StateRemuxing},
	StateNoSubtitles: {StateDone},
	StateRemuxing:    {StateArchiving, StateDone},
	StateArchiving:   {StateDone},
}

// CanTransition reports whether from may move to to. Failed is reachable
// from every non-terminal state.
func CanTransition(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
