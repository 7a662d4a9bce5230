package domain

// Phase represents the coarse state of a game session
type Phase string

const (
	PhasePreparation Phase = "preparation" // Constructed, not started
	PhaseActive      Phase = "active"      // Round open for input
	PhaseReveal      Phase = "reveal"      // Round closed, results shown before the next round
	PhaseScores      Phase = "scores"      // Final round closed, final standings shown
	PhaseEnd         Phase = "end"         // Terminal
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// AcceptsInput reports whether player actions are processed in this phase
func (p Phase) AcceptsInput() bool {
	return p == PhaseActive
}

// IsTerminal reports whether no further transitions can happen
func (p Phase) IsTerminal() bool {
	return p == PhaseEnd
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhasePreparation: {PhaseActive},
		PhaseActive:      {PhaseReveal, PhaseScores},
		PhaseReveal:      {PhaseActive},
		PhaseScores:      {PhaseEnd},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}
